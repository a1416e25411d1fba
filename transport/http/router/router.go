package router

import (
	"slate/internal/handlers/booking"
	"slate/internal/handlers/chalan"
	"slate/internal/handlers/customer"
	"slate/internal/handlers/editor"
	"slate/internal/handlers/project"
	"slate/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room     room.Handler
	Editor   editor.Handler
	Customer customer.Handler
	Project  project.Handler
	Booking  booking.Handler
	Chalan   chalan.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Editor.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Project.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Chalan.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

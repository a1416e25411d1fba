//go:build wireinject
// +build wireinject

package di

import (
	"slate/config"
	"slate/infras/jwt"
	"slate/infras/kafka"
	"slate/infras/otel"
	"slate/infras/postgres"
	"slate/infras/redis"
	"slate/internal/events"
	"slate/shared/cache"
	"slate/shared/clock"
	"slate/transport/http"
	"slate/transport/http/middleware"
	"slate/transport/http/router"

	bookingRepository "slate/internal/domains/booking/repository"
	bookingService "slate/internal/domains/booking/service"
	chalanRepository "slate/internal/domains/chalan/repository"
	chalanService "slate/internal/domains/chalan/service"
	customerRepository "slate/internal/domains/customer/repository"
	customerService "slate/internal/domains/customer/service"
	editorRepository "slate/internal/domains/editor/repository"
	editorService "slate/internal/domains/editor/service"
	projectRepository "slate/internal/domains/project/repository"
	projectService "slate/internal/domains/project/service"
	roomRepository "slate/internal/domains/room/repository"
	roomService "slate/internal/domains/room/service"

	bookingHandler "slate/internal/handlers/booking"
	chalanHandler "slate/internal/handlers/chalan"
	customerHandler "slate/internal/handlers/customer"
	editorHandler "slate/internal/handlers/editor"
	projectHandler "slate/internal/handlers/project"
	roomHandler "slate/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
	events.NewPublisher,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var editorDomain = wire.NewSet(
	editorRepository.New,
	editorService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var projectDomain = wire.NewSet(
	projectRepository.New,
	projectService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var chalanDomain = wire.NewSet(
	chalanRepository.New,
	chalanService.New,
)

var domains = wire.NewSet(
	roomDomain,
	editorDomain,
	customerDomain,
	projectDomain,
	bookingDomain,
	chalanDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	editorHandler.New,
	customerHandler.New,
	projectHandler.New,
	bookingHandler.New,
	chalanHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

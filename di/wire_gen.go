// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"slate/config"
	"slate/infras/jwt"
	"slate/infras/kafka"
	"slate/infras/otel"
	"slate/infras/postgres"
	"slate/infras/redis"
	repository5 "slate/internal/domains/booking/repository"
	service5 "slate/internal/domains/booking/service"
	repository6 "slate/internal/domains/chalan/repository"
	service6 "slate/internal/domains/chalan/service"
	repository3 "slate/internal/domains/customer/repository"
	service3 "slate/internal/domains/customer/service"
	repository2 "slate/internal/domains/editor/repository"
	service2 "slate/internal/domains/editor/service"
	repository4 "slate/internal/domains/project/repository"
	service4 "slate/internal/domains/project/service"
	"slate/internal/domains/room/repository"
	"slate/internal/domains/room/service"
	"slate/internal/events"
	"slate/internal/handlers/booking"
	"slate/internal/handlers/chalan"
	"slate/internal/handlers/customer"
	"slate/internal/handlers/editor"
	"slate/internal/handlers/project"
	"slate/internal/handlers/room"
	"slate/shared/cache"
	"slate/shared/clock"
	"slate/transport/http"
	"slate/transport/http/middleware"
	"slate/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryRoom := repository.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceRoom := service.New(repositoryRoom, configConfig, redisCache, otelOtel)
	jwtJWT := jwt.New(configConfig)
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, configConfig)
	handler := room.New(serviceRoom, authRole, otelOtel)
	repositoryEditor := repository2.New(connection, otelOtel)
	serviceEditor := service2.New(repositoryEditor, configConfig, redisCache, otelOtel)
	editorHandler := editor.New(serviceEditor, authRole, otelOtel)
	repositoryCustomer := repository3.New(connection, otelOtel)
	serviceCustomer := service3.New(repositoryCustomer, configConfig, redisCache, otelOtel)
	customerHandler := customer.New(serviceCustomer, authRole, otelOtel)
	repositoryProject := repository4.New(connection, otelOtel)
	serviceProject := service4.New(repositoryProject, repositoryCustomer, configConfig, redisCache, otelOtel)
	projectHandler := project.New(serviceProject, authRole, otelOtel)
	repositoryBooking := repository5.New(connection, otelOtel)
	clockClock := clock.New()
	kafkaClient := kafka.New(configConfig)
	publisher := events.NewPublisher(configConfig, kafkaClient, otelOtel)
	serviceBooking := service5.New(repositoryBooking, repositoryRoom, repositoryEditor, configConfig, redisCache, clockClock, publisher, otelOtel)
	bookingHandler := booking.New(serviceBooking, authRole, otelOtel)
	repositoryChalan := repository6.New(connection, repositoryProject, otelOtel)
	serviceChalan := service6.New(repositoryChalan, repositoryProject, repositoryBooking, configConfig, redisCache, clockClock, publisher, otelOtel)
	chalanHandler := chalan.New(serviceChalan, authRole, otelOtel)
	domainHandlers := router.DomainHandlers{
		Room:     handler,
		Editor:   editorHandler,
		Customer: customerHandler,
		Project:  projectHandler,
		Booking:  bookingHandler,
		Chalan:   chalanHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache, clock.New, events.NewPublisher)

var roomDomain = wire.NewSet(repository.New, service.New)

var editorDomain = wire.NewSet(repository2.New, service2.New)

var customerDomain = wire.NewSet(repository3.New, service3.New)

var projectDomain = wire.NewSet(repository4.New, service4.New)

var bookingDomain = wire.NewSet(repository5.New, service5.New)

var chalanDomain = wire.NewSet(repository6.New, service6.New)

var domains = wire.NewSet(
	roomDomain,
	editorDomain,
	customerDomain,
	projectDomain,
	bookingDomain,
	chalanDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), room.New, editor.New, customer.New, project.New, booking.New, chalan.New, router.New)

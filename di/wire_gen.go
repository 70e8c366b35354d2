// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"merobooking/config"
	"merobooking/infras/jwt"
	"merobooking/infras/kafka"
	"merobooking/infras/otel"
	"merobooking/infras/postgres"
	"merobooking/infras/redis"
	"merobooking/infras/s3"
	"merobooking/internal/domains/auth/service"
	service2 "merobooking/internal/domains/availability/service"
	repository3 "merobooking/internal/domains/booking/repository"
	service3 "merobooking/internal/domains/booking/service"
	service4 "merobooking/internal/domains/concierge/service"
	service5 "merobooking/internal/domains/dashboard/service"
	repository4 "merobooking/internal/domains/facility/repository"
	service6 "merobooking/internal/domains/facility/service"
	"merobooking/internal/domains/payment"
	repository5 "merobooking/internal/domains/review/repository"
	service7 "merobooking/internal/domains/review/service"
	repository2 "merobooking/internal/domains/room/repository"
	service8 "merobooking/internal/domains/room/service"
	"merobooking/internal/domains/user/repository"
	service9 "merobooking/internal/domains/user/service"
	"merobooking/internal/handlers/auth"
	"merobooking/internal/handlers/availability"
	"merobooking/internal/handlers/booking"
	"merobooking/internal/handlers/concierge"
	"merobooking/internal/handlers/dashboard"
	"merobooking/internal/handlers/facility"
	"merobooking/internal/handlers/review"
	"merobooking/internal/handlers/room"
	"merobooking/internal/handlers/user"
	"merobooking/permissions"
	"merobooking/shared/cache"
	"merobooking/transport/http"
	"merobooking/transport/http/middleware"
	"merobooking/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	repositoryRoom := repository2.New(connection, otelOtel)
	repositoryBooking := repository3.New(connection, otelOtel)
	serviceAvailability := service2.New(repositoryRoom, repositoryBooking, otelOtel)
	availabilityHandler := availability.New(serviceAvailability, otelOtel)
	gateway := payment.NewWalletGateway(otelOtel)
	client := kafka.New(configConfig)
	redisClient := redis.New(configConfig)
	redisCache := cache.NewRedisCache(redisClient, otelOtel)
	serviceBooking := service3.New(repositoryBooking, repositoryRoom, serviceAvailability, gateway, client, configConfig, redisCache, otelOtel)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	repositoryFacility := repository4.New(connection, otelOtel)
	serviceConcierge := service4.New(repositoryFacility, repositoryRoom, configConfig, otelOtel)
	conciergeHandler := concierge.New(serviceConcierge, otelOtel)
	serviceDashboard := service5.New(repositoryBooking, repositoryRoom, otelOtel)
	dashboardHandler := dashboard.New(serviceDashboard, otelOtel)
	serviceFacility := service6.New(repositoryFacility, configConfig, redisCache, otelOtel)
	facilityHandler := facility.New(serviceFacility, otelOtel)
	repositoryReview := repository5.New(connection, otelOtel)
	serviceReview := service7.New(repositoryReview, repositoryBooking, configConfig, redisCache, otelOtel)
	reviewHandler := review.New(serviceReview, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceRoom := service8.New(repositoryRoom, configConfig, redisCache, otelOtel, s3S3)
	roomHandler := room.New(serviceRoom, otelOtel)
	serviceUser := service9.New(repositoryUser, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:         handler,
		Availability: availabilityHandler,
		Booking:      bookingHandler,
		Concierge:    conciergeHandler,
		Dashboard:    dashboardHandler,
		Facility:     facilityHandler,
		Review:       reviewHandler,
		Room:         roomHandler,
		User:         userHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New, s3.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var facilityDomain = wire.NewSet(repository4.New, service6.New)

var roomDomain = wire.NewSet(repository2.New, service8.New)

var bookingDomain = wire.NewSet(repository3.New, service2.New, payment.NewWalletGateway, service3.New)

var reviewDomain = wire.NewSet(repository5.New, service7.New)

var userDomain = wire.NewSet(repository.New, service9.New, service.New)

var operationsDomain = wire.NewSet(service5.New, service4.New)

var domains = wire.NewSet(
	facilityDomain,
	roomDomain,
	bookingDomain,
	reviewDomain,
	userDomain,
	operationsDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, availability.New, booking.New, concierge.New, dashboard.New, facility.New, review.New, room.New, user.New, router.New)

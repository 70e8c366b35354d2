//go:build wireinject
// +build wireinject

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
	"merobooking/permissions"
	"merobooking/shared/cache"
	"merobooking/transport/http"
	"merobooking/transport/http/middleware"
	"merobooking/transport/http/router"

	authService "merobooking/internal/domains/auth/service"
	availabilityService "merobooking/internal/domains/availability/service"
	bookingRepository "merobooking/internal/domains/booking/repository"
	bookingService "merobooking/internal/domains/booking/service"
	conciergeService "merobooking/internal/domains/concierge/service"
	dashboardService "merobooking/internal/domains/dashboard/service"
	facilityRepository "merobooking/internal/domains/facility/repository"
	facilityService "merobooking/internal/domains/facility/service"
	"merobooking/internal/domains/payment"
	reviewRepository "merobooking/internal/domains/review/repository"
	reviewService "merobooking/internal/domains/review/service"
	roomRepository "merobooking/internal/domains/room/repository"
	roomService "merobooking/internal/domains/room/service"
	userRepository "merobooking/internal/domains/user/repository"
	userService "merobooking/internal/domains/user/service"

	authHandler "merobooking/internal/handlers/auth"
	availabilityHandler "merobooking/internal/handlers/availability"
	bookingHandler "merobooking/internal/handlers/booking"
	conciergeHandler "merobooking/internal/handlers/concierge"
	dashboardHandler "merobooking/internal/handlers/dashboard"
	facilityHandler "merobooking/internal/handlers/facility"
	reviewHandler "merobooking/internal/handlers/review"
	roomHandler "merobooking/internal/handlers/room"
	userHandler "merobooking/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	availabilityService.New,
	payment.NewWalletGateway,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var operationsDomain = wire.NewSet(
	dashboardService.New,
	conciergeService.New,
)

var domains = wire.NewSet(
	facilityDomain,
	roomDomain,
	bookingDomain,
	reviewDomain,
	userDomain,
	operationsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	conciergeHandler.New,
	dashboardHandler.New,
	facilityHandler.New,
	reviewHandler.New,
	roomHandler.New,
	userHandler.New,
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

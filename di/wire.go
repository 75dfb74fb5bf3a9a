//go:build wireinject
// +build wireinject

package di

import (
	"roomly/config"
	"roomly/infras/jwt"
	"roomly/infras/kafka"
	"roomly/infras/otel"
	"roomly/infras/postgres"
	"roomly/infras/redis"
	"roomly/infras/s3"
	"roomly/permissions"
	"roomly/shared/cache"
	"roomly/shared/timezone"
	"roomly/transport/http"
	"roomly/transport/http/middleware"
	"roomly/transport/http/router"

	"github.com/google/wire"

	authService "roomly/internal/domains/auth/service"
	bookingRepository "roomly/internal/domains/booking/repository"
	bookingService "roomly/internal/domains/booking/service"
	commentRepository "roomly/internal/domains/comment/repository"
	commentService "roomly/internal/domains/comment/service"
	favoriteRepository "roomly/internal/domains/favorite/repository"
	favoriteService "roomly/internal/domains/favorite/service"
	locationRepository "roomly/internal/domains/location/repository"
	locationService "roomly/internal/domains/location/service"
	roomRepository "roomly/internal/domains/room/repository"
	roomService "roomly/internal/domains/room/service"
	userRepository "roomly/internal/domains/user/repository"
	userService "roomly/internal/domains/user/service"

	authHandler "roomly/internal/handlers/auth"
	bookingHandler "roomly/internal/handlers/booking"
	commentHandler "roomly/internal/handlers/comment"
	favoriteHandler "roomly/internal/handlers/favorite"
	locationHandler "roomly/internal/handlers/location"
	roomHandler "roomly/internal/handlers/room"
	userHandler "roomly/internal/handlers/user"
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
	timezone.SystemClock,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var locationDomain = wire.NewSet(
	locationRepository.New,
	locationService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var commentDomain = wire.NewSet(
	commentRepository.New,
	commentService.New,
)

var favoriteDomain = wire.NewSet(
	favoriteRepository.New,
	favoriteService.New,
)

var domains = wire.NewSet(
	userDomain,
	locationDomain,
	roomDomain,
	bookingDomain,
	commentDomain,
	favoriteDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	locationHandler.New,
	roomHandler.New,
	bookingHandler.New,
	commentHandler.New,
	favoriteHandler.New,
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

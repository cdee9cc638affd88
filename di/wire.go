//go:build wireinject
// +build wireinject

package di

import (
	"voyage/config"
	"voyage/infras/jwt"
	"voyage/infras/kafka"
	"voyage/infras/mailer"
	"voyage/infras/media"
	"voyage/infras/metrics"
	"voyage/infras/otel"
	"voyage/infras/postgres"
	"voyage/infras/redis"
	"voyage/internal/attachment"
	authService "voyage/internal/domains/auth/service"
	bookingRepository "voyage/internal/domains/booking/repository"
	bookingService "voyage/internal/domains/booking/service"
	contactRepository "voyage/internal/domains/contact/repository"
	contactService "voyage/internal/domains/contact/service"
	frontRepository "voyage/internal/domains/front/repository"
	frontService "voyage/internal/domains/front/service"
	galleryRepository "voyage/internal/domains/gallery/repository"
	galleryService "voyage/internal/domains/gallery/service"
	itemRepository "voyage/internal/domains/item/repository"
	itemService "voyage/internal/domains/item/service"
	placeRepository "voyage/internal/domains/place/repository"
	placeService "voyage/internal/domains/place/service"
	postRepository "voyage/internal/domains/post/repository"
	postService "voyage/internal/domains/post/service"
	travelServiceRepository "voyage/internal/domains/travelservice/repository"
	travelServiceService "voyage/internal/domains/travelservice/service"
	userRepository "voyage/internal/domains/user/repository"
	userService "voyage/internal/domains/user/service"
	authHandler "voyage/internal/handlers/auth"
	bookingHandler "voyage/internal/handlers/booking"
	contactHandler "voyage/internal/handlers/contact"
	frontHandler "voyage/internal/handlers/front"
	galleryHandler "voyage/internal/handlers/gallery"
	itemHandler "voyage/internal/handlers/item"
	placeHandler "voyage/internal/handlers/place"
	postHandler "voyage/internal/handlers/post"
	travelServiceHandler "voyage/internal/handlers/travelservice"
	userHandler "voyage/internal/handlers/user"
	"voyage/permissions"
	"voyage/shared/cache"
	"voyage/transport/http"
	"voyage/transport/http/middleware"
	"voyage/transport/http/router"

	"github.com/google/wire"
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
	mailer.New,
	media.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	attachment.NewSink,
	attachment.New,
)

var placeDomain = wire.NewSet(
	placeRepository.New,
	placeRepository.NewImage,
	placeRepository.NewItineraryDay,
	placeRepository.NewItineraryPhoto,
	placeService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var catalogueDomain = wire.NewSet(
	itemRepository.New,
	itemService.New,
	travelServiceRepository.New,
	travelServiceService.New,
	galleryRepository.New,
	galleryService.New,
	postRepository.New,
	postService.New,
	frontRepository.New,
	frontService.New,
	contactRepository.New,
	contactService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	placeDomain,
	bookingDomain,
	catalogueDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	placeHandler.New,
	bookingHandler.New,
	itemHandler.New,
	travelServiceHandler.New,
	galleryHandler.New,
	postHandler.New,
	contactHandler.New,
	frontHandler.New,
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

// InitializeReconciler builds the consumer that retries deletion of orphaned media.
func InitializeReconciler() *Reconciler {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		media.New,
		wire.Struct(new(Reconciler), "*"),
	)

	return &Reconciler{}
}

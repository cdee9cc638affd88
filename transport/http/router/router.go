package router

import (
	"net/http"

	"voyage/config"
	_ "voyage/docs" // swagger spec
	"voyage/infras/media"
	"voyage/infras/metrics"
	"voyage/internal/handlers/auth"
	"voyage/internal/handlers/booking"
	"voyage/internal/handlers/contact"
	"voyage/internal/handlers/front"
	"voyage/internal/handlers/gallery"
	"voyage/internal/handlers/item"
	"voyage/internal/handlers/place"
	"voyage/internal/handlers/post"
	"voyage/internal/handlers/travelservice"
	"voyage/internal/handlers/user"
	"voyage/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const mediaPrefix = "/media/"

type DomainHandlers struct {
	Auth          auth.Handler
	User          user.Handler
	Place         place.Handler
	Booking       booking.Handler
	Item          item.Handler
	TravelService travelservice.Handler
	Gallery       gallery.Handler
	Post          post.Handler
	Contact       contact.Handler
	Front         front.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	auth           middleware.AuthRole
	metrics        metrics.Metrics
	store          media.Store
	config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.RealIP, chiMiddleware.Recoverer, r.app.Tracing)

	if r.config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.config.App.CORS.AllowedHeaders,
			AllowCredentials: r.config.App.CORS.AllowCredentials,
			MaxAge:           r.config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Handle("/metrics", r.metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// the local backend serves its own files; S3 objects are public URLs
	if servable, ok := r.store.(media.Servable); ok {
		router.Handle(mediaPrefix+"*", http.StripPrefix(mediaPrefix, http.FileServer(servable.FileSystem())))
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.app.RateLimit(), r.auth.APIKey, r.auth.Auth, r.auth.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Place.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Item.Router(routerGroup)
		r.DomainHandlers.TravelService.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Post.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Front.Router(routerGroup)
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	auth middleware.AuthRole,
	metrics metrics.Metrics,
	store media.Store,
	config *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		auth:           auth,
		metrics:        metrics,
		store:          store,
		config:         config,
	}
}

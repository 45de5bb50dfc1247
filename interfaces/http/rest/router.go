package rest

import (
	"net/http"

	"ntlango-api/infrastructure/config"
	"ntlango-api/interfaces/http/rest/handlers"
	"ntlango-api/interfaces/http/rest/middleware"
	apperrors "ntlango-api/pkg/errors"
	"ntlango-api/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg            *config.Config
	eventHandler   *handlers.EventHandler
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	healthHandler  *handlers.HealthHandler
	errorHandler   *apperrors.ErrorHandler
	metrics        *observability.Metrics
	tracer         *observability.Tracer
	logger         *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	eventHandler *handlers.EventHandler,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
	errorHandler *apperrors.ErrorHandler,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:            cfg,
		eventHandler:   eventHandler,
		authHandler:    authHandler,
		profileHandler: profileHandler,
		healthHandler:  healthHandler,
		errorHandler:   errorHandler,
		metrics:        metrics,
		tracer:         tracer,
		logger:         logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}
	if rt.cfg.EnableTracing {
		router.Use(middleware.Tracing(rt.tracer))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{rt.cfg.ClientURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Every unmatched path gets the same not-found payload
	router.NotFound(rt.errorHandler.NotFoundPath)
	router.MethodNotAllowed(rt.errorHandler.NotFoundPath)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", rt.healthHandler.Healthcheck)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/verifyEmail", rt.authHandler.VerifyEmail)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAccessToken(rt.errorHandler, rt.logger))
				r.Post("/logout", rt.authHandler.Logout)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Put("/forgotPassword", rt.profileHandler.ForgotPassword)
			r.Put("/forgotPassword/confirm", rt.profileHandler.ConfirmForgotPassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAccessToken(rt.errorHandler, rt.logger))
				r.Put("/", rt.profileHandler.UpdateProfile)
				r.Delete("/remove", rt.profileHandler.RemoveAccount)
				r.Delete("/remove/{username}", rt.profileHandler.AdminRemoveAccount)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", rt.eventHandler.CreateEvent)
			r.Get("/", rt.eventHandler.GetEvents)
			r.Get("/{eventId}", rt.eventHandler.GetEventByID)
			r.Put("/{eventId}", rt.eventHandler.UpdateEvent)
			r.Delete("/{eventId}", rt.eventHandler.DeleteEvent)
			r.Put("/{eventId}/rsvp", rt.eventHandler.RSVPToEvent)
			r.Put("/{eventId}/cancelrsvp", rt.eventHandler.CancelRSVPToEvent)
		})
	})

	return router
}

package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/infrastructure/di"
	"github.com/axthosarouris/nva-publication-api-sub001/interfaces/http/rest/handlers"
	"github.com/axthosarouris/nva-publication-api-sub001/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*.nva.sikt.no", "http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	resourceHandler := handlers.NewResourceHandler(
		rt.container.CreateResourceHandler,
		rt.container.UpdateResourceHandler,
		rt.container.CommandBus,
		rt.container.QueryBus,
		rt.logger,
	)
	ticketHandler := handlers.NewTicketHandler(
		rt.container.CreateTicketHandler,
		rt.container.CommandBus,
		rt.container.QueryBus,
		rt.logger,
	)
	messageHandler := handlers.NewMessageHandler(
		rt.container.CreateMessageHandler,
		rt.container.CommandBus,
		rt.container.QueryBus,
		rt.logger,
	)

	router.Route("/publication-api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate())

		r.Route("/publications", func(r chi.Router) {
			r.Post("/", resourceHandler.Create)
			r.Get("/", resourceHandler.List)
			r.Get("/{identifier}", resourceHandler.Get)
			r.Put("/{identifier}", resourceHandler.Update)
			r.Delete("/{identifier}", resourceHandler.Delete)
			r.Post("/{identifier}/publish", resourceHandler.Publish)
			r.Post("/{identifier}/mark-for-deletion", resourceHandler.MarkForDeletion)
			r.Post("/{identifier}/restore", resourceHandler.Restore)

			r.Post("/{identifier}/tickets", ticketHandler.Create)
			r.Get("/{identifier}/tickets", ticketHandler.ListByResource)
			r.Post("/{identifier}/messages", messageHandler.Create)
			r.Get("/{identifier}/messages", messageHandler.ListByResource)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", ticketHandler.ListByStatus)
			r.Get("/{ticketIdentifier}", ticketHandler.Get)
			r.Post("/{ticketIdentifier}/complete", ticketHandler.Complete)
			r.Post("/{ticketIdentifier}/close", ticketHandler.Close)
			r.Post("/{ticketIdentifier}/viewed", ticketHandler.MarkViewed)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/{messageIdentifier}", messageHandler.Get)
			r.Post("/{messageIdentifier}/read", messageHandler.MarkRead)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

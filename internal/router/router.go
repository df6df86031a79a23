package router

import (
	"net/http"

	"magicgatherer-api/internal/handler"
	"magicgatherer-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	CardHandler       *handler.CardHandler
	EditionHandler    *handler.EditionHandler
	CollectionHandler *handler.CollectionHandler
	AccountHandler    *handler.AccountHandler
	AuthMiddleware    func(http.Handler) http.Handler
	Metrics           http.Handler
	AllowedOrigins    []string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		// PUBLIC routes (no auth required)
		if cfg.Handler != nil {
			r.Get("/status", cfg.Handler.Status)
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.AccountHandler != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", cfg.AccountHandler.Login)
				r.Post("/register", cfg.AccountHandler.Register)
				r.Post("/forgot-password", cfg.AccountHandler.ForgotPassword)
				r.Post("/reset-password", cfg.AccountHandler.ResetPassword)
			})
		}

		if cfg.CardHandler != nil {
			r.Route("/cards", func(r chi.Router) {
				r.Get("/", cfg.CardHandler.List)
				r.Get("/search", cfg.CardHandler.Search)
				r.Get("/{id}", cfg.CardHandler.Get)
			})
		}

		if cfg.EditionHandler != nil {
			r.Route("/editions", func(r chi.Router) {
				r.Get("/", cfg.EditionHandler.Dropdown)
				r.Get("/search", cfg.EditionHandler.Search)
				r.Get("/names", cfg.EditionHandler.Names)
				r.Get("/dropdown", cfg.EditionHandler.Dropdown)
				r.Get("/grouped", cfg.EditionHandler.Grouped)
				r.Get("/{id}", cfg.EditionHandler.Get)
			})
		}

		if cfg.CollectionHandler != nil {
			r.Route("/user", func(r chi.Router) {
				r.Get("/cards/{username}", cfg.CollectionHandler.Page)
				r.Get("/cards/{username}/details", cfg.CollectionHandler.Details)

				// AUTHENTICATED routes act on the token's user
				r.Group(func(r chi.Router) {
					if cfg.AuthMiddleware != nil {
						r.Use(cfg.AuthMiddleware)
					}
					r.Get("/cards/conditions/{cardId}", cfg.CollectionHandler.Conditions)
					r.Post("/cards", cfg.CollectionHandler.Add)
					r.Put("/cards/{id}", cfg.CollectionHandler.Update)
					r.Delete("/cards/{id}", cfg.CollectionHandler.Delete)
				})
			})
		}
	})

	return r
}

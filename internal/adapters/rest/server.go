package rest

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	core_port "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики REST API.
type Handlers struct {
	Listings   *ListingsHandler
	Favorites  *FavoritesHandler
	Categories *CategoriesHandler
	// Health проверяет доступность хранилища, может быть nil.
	Health func(ctx context.Context) error
}

type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter собирает chi-роутер. metrics может быть nil.
func NewRouter(cfg RouterConfig, handlers Handlers, auth *Authenticator, metrics *Metrics, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r.Use(middleware.RealIP)
	if metrics != nil {
		r.Use(metrics.Middleware)
	}
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", contextkeys.TraceHeader},
		ExposedHeaders:   []string{contextkeys.TraceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))

		r.Get("/healthz", healthHandler(handlers.Health))

		r.Route("/api/v1", func(r chi.Router) {
			// Публичные роуты: пользователь нужен только для флага is_favorite
			r.Group(func(r chi.Router) {
				r.Use(auth.Optional)
				r.Get("/listings", handlers.Listings.SearchListings)
				r.Get("/listings/{listingID}", handlers.Listings.GetListing)
				r.Get("/categories", handlers.Categories.GetCategories)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)

				r.Get("/me/listings", handlers.Listings.SearchMyListings)
				r.Get("/me/listings/{listingID}", handlers.Listings.GetMyListing)

				r.Route("/favorites", func(r chi.Router) {
					r.Get("/", handlers.Favorites.GetUserFavorites)
					r.Get("/ids", handlers.Favorites.GetUserFavoritesIds)
					r.Post("/", handlers.Favorites.AddToFavorites)
					r.Delete("/{listingID}", handlers.Favorites.RemoveFromFavorites)
				})
			})
		})
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				WriteJSONError(w, http.StatusServiceUnavailable, "storage is unavailable")
				return
			}
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Server - REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string, handler http.Handler, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}

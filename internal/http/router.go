package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/http/handlers"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/metrics"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/candy-inventory-ui/docs"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	if trustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)

	r.Get("/", handlers.PageHandler)
	r.Get("/export", handlers.ExportHandler)
	r.Get("/healthz", handlers.HealthHandler)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		// no configured origins means same-origin only
		if len(allowedOrigins) > 0 {
			r.Use(cors.New(cors.Options{
				AllowedOrigins: allowedOrigins,
				AllowedMethods: []string{http.MethodGet},
				AllowedHeaders: []string{"Accept", "X-Request-ID"},
			}).Handler)
		}
		r.Get("/state", handlers.GetStateHandler)
		r.Get("/events", handlers.EventsHandler)
	})

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimit(limiter, banService))
		}
		r.Post("/refresh", handlers.RefreshHandler)
		r.Post("/candy", handlers.AddCandyHandler)
		r.Post("/inventory/update", handlers.UpdateInventoryHandler)
		r.Post("/inventory/{id}/delete", handlers.DeleteInventoryHandler)
		r.Post("/queries/{slug}", handlers.RunQueryHandler)
	})

	return r
}

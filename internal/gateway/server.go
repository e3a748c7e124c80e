package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Public — no auth required.
	r.Get("/health", g.handleHealth())
	if g.metrics != nil {
		r.Handle("/metrics", g.metrics.Handler())
	}

	if g.responder != nil {
		r.Group(func(r chi.Router) {
			if g.config.Auth.IsConfigured() {
				r.Use(authMiddleware(g.config.Auth, g.logger))
			}
			r.Get("/ws", g.handleWebSocket)
			r.Route("/api", func(r chi.Router) {
				r.Get("/reminders", g.handleListReminders())
				r.Group(func(r chi.Router) {
					r.Use(rateLimitMiddleware(g.limiter, g.logger))
					r.Post("/classify", g.handleClassify())
					r.Post("/turns", g.handleTurn())
				})
			})
		})
	}

	if len(g.config.CORS.AllowedOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins:   g.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
}

package rest

import (
	"net/http"
	"time"

	"github.com/civhall/municipal-events/internal/security"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

type RouterConfig struct {
	Verifier security.AccessTokenVerifier
	Issuer   string

	Limiter     RequestLimiter
	PublicLimit int
	WriteLimit  int
	RateWindow  time.Duration
}

// NewRouter wires the HTTP surface. Public reads are limited per IP in
// process; authenticated writes go through the shared redis window so
// the limit holds across replicas.
func NewRouter(events *EventHandler, enrollments *EnrollmentHandler, cfg RouterConfig) http.Handler {
	if cfg.PublicLimit <= 0 {
		cfg.PublicLimit = 300
	}
	if cfg.WriteLimit <= 0 {
		cfg.WriteLimit = 60
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(HTTPLogger)
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.PublicLimit, cfg.RateWindow))

			r.Get("/events", events.List)
			r.Get("/events/{id}", events.Get)
			r.Get("/events/{id}/availability", enrollments.Availability)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Verifier, cfg.Issuer))
			r.Use(RateLimitMiddleware(cfg.Limiter, cfg.WriteLimit, cfg.RateWindow))

			r.Post("/events", events.Create)
			r.Post("/events/{id}/confirm", events.Confirm)
			r.Post("/events/{id}/start", events.Start)
			r.Post("/events/{id}/finish", events.Finish)

			r.Post("/events/{id}/enrollments", enrollments.Enroll)
			r.Delete("/events/{id}/enrollments", enrollments.Withdraw)
			r.Get("/events/{id}/participants", enrollments.Participants)

			r.Get("/me/events", events.ListMine)
			r.Get("/me/enrollments", enrollments.ListMine)
		})
	})

	return r
}

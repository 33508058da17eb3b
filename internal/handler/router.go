package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/narlock/alder/internal/metrics"
	"github.com/narlock/alder/internal/repository"
)

// NewRouter wires every API route. collector may be nil to skip the
// /metrics endpoint and request instrumentation.
func NewRouter(
	users repository.UserRepository,
	times repository.TimeRepository,
	streaks repository.StreakRepository,
	collector *metrics.Collector,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	if collector != nil {
		r.Use(collector.Middleware)
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	uh := NewUserHandler(users)
	r.Route("/user", func(r chi.Router) {
		r.Post("/", uh.Create)
		r.Post("/search", uh.Search)
		r.Get("/{id}", uh.Get)
		r.Patch("/{id}", uh.Patch)
	})

	th := NewTimeHandler(times, nil)
	r.Route("/dailytime", func(r chi.Router) {
		r.Get("/{id}", th.GetDaily)
		r.Patch("/{id}", th.PatchDaily)
	})
	r.Route("/monthtime", func(r chi.Router) {
		r.Get("/{id}/total", th.GetMonthTotal)
		r.Patch("/{id}", th.PatchMonthly)
	})

	sh := NewStreakHandler(streaks, nil)
	r.Route("/streak", func(r chi.Router) {
		r.Post("/search", sh.Search)
		r.Post("/{id}", sh.GetOrCreate)
		r.Get("/{id}", sh.Get)
		r.Put("/{id}", sh.Save)
	})

	return r
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parkpulse/parkpulse-backend/api/controllers"
	"github.com/parkpulse/parkpulse-backend/api/middleware"
	"github.com/parkpulse/parkpulse-backend/internal/orchestrator"
	"github.com/parkpulse/parkpulse-backend/pkg/config"
	"github.com/parkpulse/parkpulse-backend/pkg/logger"
)

// NewRouter wires the HTTP surface over the orchestrator. Every
// garage mutation goes through the orchestrator's single writer; the
// handlers stay thin.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	orch *orchestrator.Orchestrator,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Actor(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/garage", func(r chi.Router) {
		r.Get("/state", controllers.GarageState(orch, logg))
		r.Get("/summary", controllers.GarageSummary(orch, logg))

		r.Route("/units/{unitID}", func(r chi.Router) {
			r.Post("/select", controllers.SelectUnit(orch, logg))
			r.Post("/release", controllers.ReleaseUnit(orch, logg))
			r.Post("/book", controllers.BookUnit(orch, logg))
		})

		r.Post("/playback", controllers.SetPlayback(orch, logg))
		r.Post("/time", controllers.SetTime(orch, logg))
		r.Post("/speed", controllers.SetSpeed(orch, logg))
		r.Post("/simulation", controllers.SetSimulation(orch, logg))
		r.Post("/reset", controllers.ResetGarage(orch, logg))
	})

	return r
}

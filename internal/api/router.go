package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hbsc-labs/insight/internal/classifier"
	"github.com/hbsc-labs/insight/internal/coach"
	"github.com/hbsc-labs/insight/internal/config"
	"github.com/hbsc-labs/insight/internal/events"
	"github.com/hbsc-labs/insight/internal/riskcore"
	"github.com/hbsc-labs/insight/internal/store"
	"github.com/hbsc-labs/insight/internal/survey"
)

func NewRouter(s store.Store, b *riskcore.Barometer, cls classifier.Client, co coach.Client, ev events.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	scales := survey.DefaultScales()
	factors := survey.DefaultFactors()

	dashboard := NewDashboardHandler(s, scales, factors, cfg.Analysis)
	factorsHandler := NewFactorsHandler(s, scales, factors, cfg.Analysis)
	barometer := NewBarometerHandler(b, cls, co, ev, logger)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/overview", dashboard.Overview)
		r.Get("/trends", dashboard.Trends)
		r.Get("/groups/means", dashboard.GroupMeans)

		r.Get("/factors/rank", factorsHandler.Rank)
		r.Get("/factors/gap", factorsHandler.Gap)

		r.Post("/barometer/score", barometer.Score)
		r.Post("/barometer/assess", barometer.Assess)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", admin.Stats)
			r.Get("/dimensions", admin.Dimensions)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

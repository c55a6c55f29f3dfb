package ws

import (
	"billiard-live/observability"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Limiter        *IPRateLimiter
	Gatherer       prometheus.Gatherer
	Monitoring     *observability.MonitoringManager
	AllowedOrigins []string
}

// NewRouter mounts the websocket channels, the snapshot endpoint and the operational endpoints.
func NewRouter(log *slog.Logger, h *Handler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(RateLimitMiddleware(cfg.Limiter, func() { log.Warn("Rate limit hit") }))
		}
		r.Get("/ws/match/{matchID}", h.Spectate)
		r.Get("/ws/match/{matchID}/", h.Spectate)
		r.Get("/ws/biro/match/{matchID}", h.Keep)
		r.Get("/ws/biro/match/{matchID}/", h.Keep)
	})

	r.Group(func(r chi.Router) {
		r.Use(CORSMiddleware(cfg.AllowedOrigins))
		r.Get("/matches/{matchID}", h.Snapshot)
	})

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if cfg.Monitoring == nil {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		if err := json.NewEncoder(w).Encode(cfg.Monitoring.GetLatest()); err != nil {
			log.Debug("Failed to encode health", "error", err)
		}
	})

	return r
}

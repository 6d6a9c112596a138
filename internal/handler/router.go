package handler

import (
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the HTTP boundary needs at startup.
type RouterConfig struct {
	Logger   *slog.Logger
	Service  CaptureService
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	CORS     CORSConfig
}

// NewRouter builds the capture API: the capture routes, health and metrics endpoints,
// wrapped in the CORS policy.
func NewRouter(cfg RouterConfig) http.Handler {
	captures := NewCaptureHandler(cfg.Logger, cfg.Service)

	r := mux.NewRouter()
	r.Use(Instrument(cfg.Logger, cfg.Metrics))

	r.HandleFunc("/captures", captures.Create).Methods(http.MethodPost)
	r.HandleFunc("/captures", captures.Index).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", captures.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return CORS(cfg.CORS)(r)
}

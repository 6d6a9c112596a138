package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CapturesSubmitted *prometheus.CounterVec
	CaptureQueries    *prometheus.CounterVec
	StorageSeconds    *prometheus.HistogramVec
	RequestSeconds    *prometheus.HistogramVec
	InFlightRequests  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CapturesSubmitted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_captures_submitted_total",
			Help: "Total number of submitted captures by outcome.",
		}, []string{"status"}),
		CaptureQueries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_capture_list_total",
			Help: "Total number of capture listing queries by filter kind.",
		}, []string{"filter"}),
		StorageSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "waypoint_storage_duration_seconds",
			Help:    "Duration of capture storage operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "waypoint_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the capture API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		InFlightRequests: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "waypoint_http_requests_in_flight",
			Help: "Current number of HTTP requests being served.",
		}),
	}
}

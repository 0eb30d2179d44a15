package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ⭐ SSOT: Prometheus 지표는 여기서만 정의
var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_http_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})

	ViewsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_views_computed_total",
		Help: "Overlay views computed, by transport",
	}, []string{"transport"})

	ViewRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_view_rows",
		Help:    "Rows returned per overlay view",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})

	DatasetCompanies = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ledger_dataset_companies",
		Help: "Companies in the loaded document",
	})

	DatasetReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_dataset_reloads_total",
		Help: "Document reloads by result",
	}, []string{"result"})

	OverlaySessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ledger_overlay_sessions",
		Help: "Open overlay websocket sessions",
	})
)

// ObserveView records one computed overlay view
func ObserveView(transport string, rows int) {
	ViewsComputed.WithLabelValues(transport).Inc()
	ViewRows.Observe(float64(rows))
}

// ObserveReload records a reload result and the new dataset size
func ObserveReload(companies int, err error) {
	if err != nil {
		DatasetReloads.WithLabelValues("error").Inc()
		return
	}
	DatasetReloads.WithLabelValues("ok").Inc()
	DatasetCompanies.Set(float64(companies))
}

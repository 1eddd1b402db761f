package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Metrics holds the proxy's Prometheus collectors
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CacheEntries     prometheus.Gauge
	CacheExpired     prometheus.Counter
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	BreakerState     *prometheus.GaugeVec
}

// NewMetrics registers the collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marsphotos_http_requests_total",
				Help: "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marsphotos_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "marsphotos_cache_hits_total",
			Help: "Photo cache hits",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "marsphotos_cache_misses_total",
			Help: "Photo cache misses",
		}),
		CacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "marsphotos_cache_entries",
			Help: "Entries currently held in the photo cache",
		}),
		CacheExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "marsphotos_cache_expired_total",
			Help: "Entries removed by the cache janitor",
		}),
		UpstreamRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marsphotos_upstream_requests_total",
				Help: "Upstream API calls by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "marsphotos_upstream_request_duration_seconds",
			Help:    "Upstream API latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		BreakerState: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marsphotos_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
}

// ObserveBreaker records a breaker transition; it matches
// api.BreakerSettings.OnStateChange.
func (m *Metrics) ObserveBreaker(name string, _, to gobreaker.State) {
	var v float64
	switch to {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	m.BreakerState.WithLabelValues(name).Set(v)
}

// Middleware records request counts and latency by chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

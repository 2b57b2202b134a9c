// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of one process, registered on the registry passed to New.
type Metrics struct {
	BoardConnections prometheus.Gauge
	BoardUpdates     prometheus.Counter
	BoardPruned      prometheus.Counter
	LoginsTotal      *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		BoardConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "board_ws_connections",
			Help: "Current number of registered board connections",
		}),
		BoardUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "board_state_updates_total",
			Help: "Total number of accepted board state replacements",
		}),
		BoardPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "board_pruned_connections_total",
			Help: "Total number of connections removed after a failed delivery",
		}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by outcome",
		}, []string{"outcome"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.BoardConnections,
		m.BoardUpdates,
		m.BoardPruned,
		m.LoginsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := prometheus.Labels{"method": r.Method, "path": path, "status": strconv.Itoa(status)}
		m.HTTPRequestsTotal.With(labels).Inc()
		m.HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}

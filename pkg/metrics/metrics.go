package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "corona"

// Registry holds the Prometheus collectors for the Corona client
type Registry struct {
	reg *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	Resolutions     *prometheus.CounterVec
}

// New creates a registry with every collector registered
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Requests sent to the Corona API by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Corona API request latency",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Quote cache lookups by result (hit, miss, error)",
			},
			[]string{"result"},
		),

		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "asset_resolutions_total",
				Help:      "Asset summaries resolved by outcome (live, no_live, error)",
			},
			[]string{"outcome"},
		),
	}

	r.reg.MustRegister(r.RequestsTotal, r.RequestDuration, r.CacheLookups, r.Resolutions)
	return r
}

// ObserveRequest records one Corona request; status 0 means a transport error
func (r *Registry) ObserveRequest(endpoint string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.RequestsTotal.WithLabelValues(endpoint, label).Inc()
	r.RequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// CacheHit, CacheMiss and CacheError count quote cache lookups
func (r *Registry) CacheHit() { r.CacheLookups.WithLabelValues("hit").Inc() }
func (r *Registry) CacheMiss() { r.CacheLookups.WithLabelValues("miss").Inc() }
func (r *Registry) CacheError() { r.CacheLookups.WithLabelValues("error").Inc() }

// Resolved counts one asset resolution
func (r *Registry) Resolved(outcome string) {
	r.Resolutions.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

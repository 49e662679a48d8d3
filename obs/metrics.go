package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SupplierRequests    *prometheus.CounterVec
	SupplierLatency     *prometheus.HistogramVec
	CacheLookups        *prometheus.CounterVec
	BookingsTotal       *prometheus.CounterVec
	RateLimitDropsTotal prometheus.Counter
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	Registry            *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on r.
func NewMetrics(r *prometheus.Registry) *Metrics {
	m := &Metrics{
		SupplierRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_requests_total",
			Help: "Outbound supplier calls by supplier and outcome",
		}, []string{"supplier", "outcome"}),
		SupplierLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supplier_request_duration_seconds",
			Help:    "Latency of outbound supplier calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"supplier"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_cache_lookups_total",
			Help: "Search cache retrievals by vertical and result",
		}, []string{"vertical", "result"}),
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking attempts by vertical and outcome",
		}, []string{"vertical", "outcome"}),
		RateLimitDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ratelimit_drops_total",
			Help: "Requests dropped due to rate limiting",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		Registry: r,
	}

	r.MustRegister(
		m.SupplierRequests,
		m.SupplierLatency,
		m.CacheLookups,
		m.BookingsTotal,
		m.RateLimitDropsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)
	return m
}

// NewNopMetrics registers on a private registry; used by tests and tools.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) ObserveSupplier(supplier, outcome string, seconds float64) {
	m.SupplierRequests.WithLabelValues(supplier, outcome).Inc()
	m.SupplierLatency.WithLabelValues(supplier).Observe(seconds)
}

func (m *Metrics) IncCacheLookup(vertical, result string) {
	m.CacheLookups.WithLabelValues(vertical, result).Inc()
}

func (m *Metrics) IncBooking(vertical, outcome string) {
	m.BookingsTotal.WithLabelValues(vertical, outcome).Inc()
}

func (m *Metrics) IncRateLimitDrops() { m.RateLimitDropsTotal.Inc() }

func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the storefront's Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry             *prometheus.Registry
	CartMutationsTotal   *prometheus.CounterVec
	CheckoutsTotal       *prometheus.CounterVec
	MembershipLookups    *prometheus.CounterVec
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestLatency   *prometheus.HistogramVec
	BackendRequestErrors *prometheus.CounterVec
}

func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	cartMutationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "cart_mutations_total",
		Help:      "Cart mutations sent to the commerce backend by kind and result.",
	}, []string{"kind", "result"})

	checkoutsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	membershipLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "membership_lookups_total",
		Help:      "Category membership resolutions by source.",
	}, []string{"source"})

	httpRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "method", "code"})

	httpRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	backendRequestErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "backend_request_errors_total",
		Help:      "Failed calls to the commerce backend by operation.",
	}, []string{"operation"})

	registry.MustRegister(
		cartMutationsTotal,
		checkoutsTotal,
		membershipLookups,
		httpRequestsTotal,
		httpRequestLatency,
		backendRequestErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:             registry,
		CartMutationsTotal:   cartMutationsTotal,
		CheckoutsTotal:       checkoutsTotal,
		MembershipLookups:    membershipLookups,
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPRequestLatency:   httpRequestLatency,
		BackendRequestErrors: backendRequestErrors,
	}
}

func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// NewServer returns the HTTP server exposing /metrics, or nil when no port is configured.
func (m *MetricsManager) NewServer(port string) *http.Server {
	if port == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
}

func (m *MetricsManager) CartMutation(kind, result string) {
	m.CartMutationsTotal.WithLabelValues(kind, result).Inc()
}

func (m *MetricsManager) Checkout(outcome string) {
	m.CheckoutsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsManager) MembershipLookup(source string) {
	m.MembershipLookups.WithLabelValues(source).Inc()
}

func (m *MetricsManager) BackendError(operation string) {
	m.BackendRequestErrors.WithLabelValues(operation).Inc()
}

func (m *MetricsManager) ObserveHTTPRequest(route, method string, code int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPRequestLatency.WithLabelValues(route, method).Observe(seconds)
}

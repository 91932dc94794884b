package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	itemMutations  *prometheus.CounterVec
	contributions  prometheus.Counter
	contributedSum prometheus.Counter
	driftRepairs   prometheus.Counter
	friendEdges    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "giftlist_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "giftlist_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		itemMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "giftlist_item_mutations_total",
			Help: "Committed wishlist item mutations by operation.",
		}, []string{"op"}),
		contributions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "giftlist_contributions_total",
			Help: "Recorded simulated contributions.",
		}),
		contributedSum: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "giftlist_contributed_cents_total",
			Help: "Sum of recorded contributions in minor units.",
		}),
		driftRepairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "giftlist_counter_drift_repairs_total",
			Help: "Wishlists whose stored totals were repaired by reconciliation.",
		}),
		friendEdges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "giftlist_friend_edges_total",
			Help: "Friend edges written by source.",
		}, []string{"source"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.itemMutations,
		m.contributions,
		m.contributedSum,
		m.driftRepairs,
		m.friendEdges,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ItemMutated(op string) {
	if m == nil {
		return
	}
	m.itemMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) ContributionRecorded(cents int64) {
	if m == nil {
		return
	}
	m.contributions.Inc()
	m.contributedSum.Add(float64(cents))
}

func (m *Metrics) DriftRepaired() {
	if m == nil {
		return
	}
	m.driftRepairs.Inc()
}

func (m *Metrics) FriendEdgeWritten(source string) {
	if m == nil {
		return
	}
	m.friendEdges.WithLabelValues(source).Inc()
}

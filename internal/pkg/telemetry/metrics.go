// Package telemetry owns the Prometheus collectors of the order core.
package telemetry

import (
	"net/http"

	"buffet/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "buffet"

// Notification results.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

// Metrics holds the collectors on a private registry so that tests and
// multiple instances never collide on the global one.
type Metrics struct {
	registry       *prometheus.Registry
	ordersCreated  prometheus.Counter
	transitions    *prometheus.CounterVec
	notifications  *prometheus.CounterVec
	ordersByStatus *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders placed.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Applied order status changes.",
		}, []string{"from", "to"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Customer emails by kind and result.",
		}, []string{"kind", "result"}),
		ordersByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders",
			Help:      "Stored orders per status, refreshed by the backlog job.",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ordersCreated,
		m.transitions,
		m.notifications,
		m.ordersByStatus,
	)

	return m
}

// Registry exposes the registry for scraping and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) OrderCreated() {
	m.ordersCreated.Inc()
}

func (m *Metrics) StatusChanged(from, to order.Status) {
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *Metrics) NotificationSent(kind, result string) {
	m.notifications.WithLabelValues(kind, result).Inc()
}

// SetStatusCounts replaces the per-status gauges. Statuses missing from
// counts are set to zero.
func (m *Metrics) SetStatusCounts(counts map[order.Status]int) {
	for _, status := range order.AllStatuses() {
		m.ordersByStatus.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}

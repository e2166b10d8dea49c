// Package metrics exposes Prometheus counters for the contact flow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist in one process.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ContactDeliveries *prometheus.CounterVec
	ContactRejected   *prometheus.CounterVec
	RateLimited       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ContactDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_deliveries_total",
			Help: "Accepted contact messages by delivery status",
		}, []string{"status"}),
		ContactRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_rejected_total",
			Help: "Contact posts rejected before delivery, by reason",
		}, []string{"reason"}),
		RateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by limiter key prefix",
		}, []string{"limiter"}),
	}
}

func (m *Metrics) ObserveDelivery(status string) {
	if m == nil {
		return
	}
	m.ContactDeliveries.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.ContactRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveRateLimited(limiter string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(limiter).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

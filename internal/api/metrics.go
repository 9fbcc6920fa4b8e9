package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the API server.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	ComputeDuration *prometheus.HistogramVec
	SignalsTotal    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaps_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		}, []string{"route", "status"}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leaps_compute_duration_seconds",
			Help:    "Time spent computing indicators and signals per request",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaps_signals_total",
			Help: "Signals emitted by kind",
		}, []string{"kind"}),
	}

	registry.MustRegister(m.RequestsTotal, m.ComputeDuration, m.SignalsTotal)

	return m
}

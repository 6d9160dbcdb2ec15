package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the Prometheus collectors of the calculation API.
type Metrics struct {
	Calculations *prometheus.CounterVec
	ReqDur       *prometheus.HistogramVec
	InFlight     prometheus.Gauge
}

// NewMetrics registers and returns the API collectors. Collectors already
// registered on reg are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "calculations_total",
			Help:      "Total number of calculation requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
	}
	m.Calculations = register(reg, m.Calculations)
	m.ReqDur = register(reg, m.ReqDur)
	m.InFlight = register(reg, m.InFlight)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}

// durationMillis converts a duration to milliseconds for metric observation.
func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

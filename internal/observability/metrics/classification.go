package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

const namespace = "doctype"

// ClassificationMetrics implements ports.ClassificationRecorder.
type ClassificationMetrics struct {
	service string

	classificationsTotal *prometheus.CounterVec
	modelCallDuration    *prometheus.HistogramVec
	modelErrorsTotal     *prometheus.CounterVec
	breakerState         *prometheus.GaugeVec
}

func NewClassificationMetrics(service string, registerer prometheus.Registerer) *ClassificationMetrics {
	classificationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classification results by category and by the path that produced them.",
		},
		[]string{"service", "category", "source"},
	)
	modelCallDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "call_duration_seconds",
			Help:      "Generative model call duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"service"},
	)
	modelErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "errors_total",
			Help:      "Failed generative model calls.",
		},
		[]string{"service"},
	)
	breakerState := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "breaker",
			Name:      "state",
			Help:      "Circuit breaker state per operation: 0 closed, 1 half-open, 2 open.",
		},
		[]string{"service", "operation"},
	)

	registerer.MustRegister(classificationsTotal, modelCallDuration, modelErrorsTotal, breakerState)

	return &ClassificationMetrics{
		service:              service,
		classificationsTotal: classificationsTotal,
		modelCallDuration:    modelCallDuration,
		modelErrorsTotal:     modelErrorsTotal,
		breakerState:         breakerState,
	}
}

func (m *ClassificationMetrics) RecordClassification(category domain.Category, source string) {
	if source == "" {
		source = "unknown"
	}
	m.classificationsTotal.WithLabelValues(m.service, string(category), source).Inc()
}

func (m *ClassificationMetrics) RecordModelCall(duration time.Duration, err error) {
	m.modelCallDuration.WithLabelValues(m.service).Observe(duration.Seconds())
	if err != nil {
		m.modelErrorsTotal.WithLabelValues(m.service).Inc()
	}
}

// RecordBreakerTransition matches resilience.Config.OnStateChange.
func (m *ClassificationMetrics) RecordBreakerTransition(operation, _, to string) {
	value := 0.0
	switch to {
	case "half-open":
		value = 1
	case "open":
		value = 2
	}
	m.breakerState.WithLabelValues(m.service, operation).Set(value)
}

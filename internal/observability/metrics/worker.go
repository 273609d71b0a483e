package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

// WorkerMetrics tracks the asynchronous classification of uploaded documents.
type WorkerMetrics struct {
	registry *prometheus.Registry

	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	inFlight  prometheus.Gauge
	queueLag  prometheus.Histogram
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	processed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "documents_processed_total",
			Help:        "Documents taken off the queue by final status and failure reason.",
			ConstLabels: constLabels,
		},
		[]string{"status", "reason"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "document_duration_seconds",
			Help:        "Time from dequeue to final status, including extraction and the model call.",
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "documents_in_flight",
			Help:        "Documents currently being classified.",
			ConstLabels: constLabels,
		},
	)
	queueLag := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "queue_lag_seconds",
			Help:        "Delay between upload and the start of classification.",
			Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
			ConstLabels: constLabels,
		},
	)

	registry.MustRegister(processed, duration, inFlight, queueLag)

	return &WorkerMetrics{
		registry:  registry,
		processed: processed,
		duration:  duration,
		inFlight:  inFlight,
		queueLag:  queueLag,
	}
}

func (m *WorkerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.inFlight.Inc()
}

// FinishDocument records the outcome of one ProcessByID run.
func (m *WorkerMetrics) FinishDocument(duration time.Duration, err error) {
	m.inFlight.Dec()

	status := string(domain.StatusReady)
	if err != nil {
		status = string(domain.StatusFailed)
	}
	m.processed.WithLabelValues(status, failureReason(err)).Inc()
	m.duration.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.Observe(lag.Seconds())
}

func failureReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case domain.IsKind(err, domain.ErrTemporary):
		return "temporary"
	case domain.IsKind(err, domain.ErrModelResponse):
		return "model_response"
	case domain.IsKind(err, domain.ErrUnauthorized):
		return "unauthorized"
	case domain.IsKind(err, domain.ErrDocumentNotFound):
		return "not_found"
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "other"
	}
}

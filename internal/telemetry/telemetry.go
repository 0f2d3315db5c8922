// Package telemetry provides OpenTelemetry instrumentation for the
// decision engine. It exports Prometheus metrics and provides tracing.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "resolvex-engine"

// Metrics holds all decision engine Prometheus metrics
type Metrics struct {
	// Classification metrics
	ClassificationsTotal   *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram

	// Moderation metrics
	ModerationsTotal *prometheus.CounterVec

	// Water assessment metrics
	WaterAssessmentsTotal *prometheus.CounterVec

	// External capability metrics
	ExternalCallDuration *prometheus.HistogramVec
	ExternalCallFailed   *prometheus.CounterVec
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initClassificationMetrics(m)
	initModerationMetrics(m)
	initWaterMetrics(m)
	initExternalMetrics(m)
	return m
}

func initClassificationMetrics(m *Metrics) {
	m.ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_classifications_total",
		Help: "Total media classifications by category and match stage",
	}, []string{"category", "match_stage"})

	m.ClassificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_classification_duration_seconds",
		Help:    "End-to-end time to classify one upload",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	})
}

func initModerationMetrics(m *Metrics) {
	m.ModerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_moderations_total",
		Help: "Total moderation verdicts by status",
	}, []string{"status"})
}

func initWaterMetrics(m *Metrics) {
	m.WaterAssessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_water_assessments_total",
		Help: "Total water quality assessments by status",
	}, []string{"status"})
}

func initExternalMetrics(m *Metrics) {
	m.ExternalCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_external_call_duration_seconds",
		Help:    "Latency of external classifier capability calls",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"capability"})

	m.ExternalCallFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_external_call_failed_total",
		Help: "Total failed external classifier capability calls",
	}, []string{"capability"})
}

// RecordClassification records one finished classification
func (p *Provider) RecordClassification(ctx context.Context, category, matchStage string, duration time.Duration) {
	p.Metrics.ClassificationsTotal.WithLabelValues(category, matchStage).Inc()
	p.Metrics.ClassificationDuration.Observe(duration.Seconds())
}

// RecordModeration records one moderation verdict
func (p *Provider) RecordModeration(ctx context.Context, status string) {
	p.Metrics.ModerationsTotal.WithLabelValues(status).Inc()
}

// RecordWaterAssessment records one water quality verdict
func (p *Provider) RecordWaterAssessment(ctx context.Context, status string) {
	p.Metrics.WaterAssessmentsTotal.WithLabelValues(status).Inc()
}

// RecordExternalCall records the latency of one external capability call
func (p *Provider) RecordExternalCall(ctx context.Context, capability string, duration time.Duration, err error) {
	p.Metrics.ExternalCallDuration.WithLabelValues(capability).Observe(duration.Seconds())
	if err != nil {
		p.Metrics.ExternalCallFailed.WithLabelValues(capability).Inc()
	}
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}

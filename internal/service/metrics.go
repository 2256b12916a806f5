package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusUseCaseObserver exports use-case outcomes as Prometheus
// metrics. Metrics register on the provided registerer, not the global
// default, so tests can run against isolated registries.
type PrometheusUseCaseObserver struct {
	runs      *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	memErrors prometheus.Counter
}

// NewPrometheusUseCaseObserver builds the observer and registers its
// collectors. Passing prometheus.DefaultRegisterer wires it to the
// process-wide /metrics endpoint.
func NewPrometheusUseCaseObserver(reg prometheus.Registerer) *PrometheusUseCaseObserver {
	factory := promauto.With(reg)
	return &PrometheusUseCaseObserver{
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saturday_use_case_total",
				Help: "Use-case executions partitioned by name and outcome.",
			},
			[]string{"use_case", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "saturday_use_case_duration_seconds",
				Help:    "Use-case execution time in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"use_case"},
		),
		memErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "saturday_memory_update_errors_total",
				Help: "Post-run preference updates that failed and were downgraded to warnings.",
			},
		),
	}
}

// ObserveUseCase counts the event. A successful run that had to bypass a
// filter reports outcome "degraded" so dashboards can tell clean plans
// from rescued ones.
func (o *PrometheusUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	outcome := "error"
	switch {
	case event.Success && fieldBool(event.Fields, "degraded"):
		outcome = "degraded"
	case event.Success:
		outcome = "success"
	}
	o.runs.WithLabelValues(event.Name, outcome).Inc()
	o.latency.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
	if fieldBool(event.Fields, "memory_update_failed") {
		o.memErrors.Inc()
	}
}

func fieldBool(fields map[string]any, key string) bool {
	v, ok := fields[key].(bool)
	return ok && v
}

package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics.
// Handlers and stores depend on this instead of the global Prometheus
// vectors so tests can inject a mock.
type MetricsRegistry interface {
	// HTTP request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Plan lifecycle metrics
	IncrementPlansCreated(strategy string)
	IncrementPlansDeleted()
	IncrementDegenerateAllocations()

	// Plan cache metrics
	IncrementPlanCacheHits()
	IncrementPlanCacheMisses()

	// Analytics sink metrics
	IncrementAnalyticsErrors()
}

// PrometheusRegistry implements MetricsRegistry using the global
// Prometheus metrics.
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry.
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementPlansCreated(strategy string) {
	PlansCreated.WithLabelValues(strategy).Inc()
}

func (r *PrometheusRegistry) IncrementPlansDeleted() {
	PlansDeleted.Inc()
}

func (r *PrometheusRegistry) IncrementDegenerateAllocations() {
	DegenerateAllocations.Inc()
}

func (r *PrometheusRegistry) IncrementPlanCacheHits() {
	PlanCacheHits.Inc()
}

func (r *PrometheusRegistry) IncrementPlanCacheMisses() {
	PlanCacheMisses.Inc()
}

func (r *PrometheusRegistry) IncrementAnalyticsErrors() {
	AnalyticsErrors.Inc()
}

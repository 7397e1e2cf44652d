package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planforge_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planforge_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// plans created, labelled by allocation strategy
	PlansCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planforge_plans_created_total",
			Help: "Total budget plans created",
		},
		[]string{"strategy"},
	)

	// plans deleted
	PlansDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planforge_plans_deleted_total",
			Help: "Total budget plans deleted",
		},
	)

	// allocation requests rejected because a period would have no days
	DegenerateAllocations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planforge_degenerate_allocations_total",
			Help: "Total allocation requests rejected as degenerate",
		},
	)

	// plan cache effectiveness
	PlanCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planforge_plan_cache_hits_total",
			Help: "Total plan cache hits",
		},
	)
	PlanCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planforge_plan_cache_misses_total",
			Help: "Total plan cache misses",
		},
	)

	// analytics sink failures (non-fatal to requests)
	AnalyticsErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planforge_analytics_errors_total",
			Help: "Total analytics recording errors",
		},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		PlansCreated,
		PlansDeleted,
		DegenerateAllocations,
		PlanCacheHits,
		PlanCacheMisses,
		AnalyticsErrors,
	)
}

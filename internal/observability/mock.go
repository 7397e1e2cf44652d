package observability

import "time"

// MockMetricsRegistry is a no-op MetricsRegistry for testing.
type MockMetricsRegistry struct{}

func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (m *MockMetricsRegistry) IncrementPlansCreated(strategy string)                                {}
func (m *MockMetricsRegistry) IncrementPlansDeleted()                                               {}
func (m *MockMetricsRegistry) IncrementDegenerateAllocations()                                      {}
func (m *MockMetricsRegistry) IncrementPlanCacheHits()                                              {}
func (m *MockMetricsRegistry) IncrementPlanCacheMisses()                                            {}
func (m *MockMetricsRegistry) IncrementAnalyticsErrors()                                            {}

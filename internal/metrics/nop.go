// Package metrics provides MetricsCollector implementations for the
// smart-task-manager client library.
package metrics

import "github.com/nhnasim333/smart-task-manager/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// CacheMetrics implementation

// RecordCacheHit discards the cache hit metric.
func (n *NopMetrics) RecordCacheHit(_ /* operation */ string) {
	// No-op
}

// RecordCacheMiss discards the cache miss metric.
func (n *NopMetrics) RecordCacheMiss(_ /* operation */ string) {
	// No-op
}

// RecordFetchShared discards the shared-fetch metric.
func (n *NopMetrics) RecordFetchShared(_ /* operation */ string) {
	// No-op
}

// RecordFetchDiscarded discards the discarded-fetch metric.
func (n *NopMetrics) RecordFetchDiscarded(_ /* operation */ string) {
	// No-op
}

// RecordInvalidation discards the invalidation metric.
func (n *NopMetrics) RecordInvalidation(_ /* tag */ string) {
	// No-op
}

// RecordRefetch discards the refetch metric.
func (n *NopMetrics) RecordRefetch(_ /* operation */ string) {
	// No-op
}

// RecordEviction discards the eviction metric.
func (n *NopMetrics) RecordEviction(_ /* operation */ string) {
	// No-op
}

// RecordSlowSubscriber discards the slow-subscriber metric.
func (n *NopMetrics) RecordSlowSubscriber() {
	// No-op
}

// WorkflowMetrics implementation

// RecordOverloadWarning discards the overload warning metric.
func (n *NopMetrics) RecordOverloadWarning() {
	// No-op
}

// RecordOverloadOverride discards the overload override metric.
func (n *NopMetrics) RecordOverloadOverride() {
	// No-op
}

// RecordMutation discards the mutation outcome metric.
func (n *NopMetrics) RecordMutation(_ /* operation */ string, _ /* success */ bool) {
	// No-op
}

package types

// CacheMetrics records query cache store activity.
type CacheMetrics interface {
	// RecordCacheHit records a subscription served from a fresh cached value.
	RecordCacheHit(operation string)

	// RecordCacheMiss records a subscription that triggered a fetch.
	RecordCacheMiss(operation string)

	// RecordFetchShared records a subscription that joined an in-flight
	// fetch instead of issuing its own request.
	RecordFetchShared(operation string)

	// RecordFetchDiscarded records a fetch response dropped because a newer
	// request for the same key was issued, or the entry was evicted.
	RecordFetchDiscarded(operation string)

	// RecordInvalidation records a cache entry marked stale by a write
	// invalidating the given tag.
	RecordInvalidation(tag string)

	// RecordRefetch records an invalidation-triggered refetch of a
	// subscribed entry.
	RecordRefetch(operation string)

	// RecordEviction records a cache entry evicted after its grace window.
	RecordEviction(operation string)

	// RecordSlowSubscriber records an update notification dropped because a
	// subscriber's channel was full.
	RecordSlowSubscriber()
}

// WorkflowMetrics records assignment workflow activity.
type WorkflowMetrics interface {
	// RecordOverloadWarning records the overload guard entering Warning.
	RecordOverloadWarning()

	// RecordOverloadOverride records a caller confirming an assignment
	// despite a capacity breach.
	RecordOverloadOverride()

	// RecordMutation records a completed write operation and its outcome.
	RecordMutation(operation string, success bool)
}

// MetricsCollector aggregates all metrics interfaces.
//
// Implement this interface to integrate with your metrics system
// (Prometheus, StatsD, etc.). A no-op implementation is used when no
// collector is provided.
type MetricsCollector interface {
	CacheMetrics
	WorkflowMetrics
}

package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nhnasim333/smart-task-manager/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are registered lazily on first use so that constructing the
// collector never panics on duplicate registration in tests.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Query cache metrics
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	fetchesShared    *prometheus.CounterVec
	fetchesDiscarded *prometheus.CounterVec
	invalidations    *prometheus.CounterVec
	refetches        *prometheus.CounterVec
	evictions        *prometheus.CounterVec
	slowSubscribers  prometheus.Counter

	// Workflow metrics
	overloadWarnings  prometheus.Counter
	overloadOverrides prometheus.Counter
	mutations         *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "smart_task_manager" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "smart_task_manager"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Subscriptions served from a fresh cached value.",
		}, []string{"op"})

		p.cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Subscriptions that triggered a fetch.",
		}, []string{"op"})

		p.fetchesShared = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "fetches_shared_total",
			Help:      "Subscriptions that joined an in-flight fetch for the same key.",
		}, []string{"op"})

		p.fetchesDiscarded = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "fetches_discarded_total",
			Help:      "Fetch responses dropped because a newer request superseded them or the entry was evicted.",
		}, []string{"op"})

		p.invalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Cache entries marked stale, by invalidated tag.",
		}, []string{"tag"})

		p.refetches = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "refetches_total",
			Help:      "Invalidation-triggered refetches of subscribed entries.",
		}, []string{"op"})

		p.evictions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Cache entries evicted after the zero-subscriber grace window.",
		}, []string{"op"})

		p.slowSubscribers = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "slow_subscribers_total",
			Help:      "Update notifications dropped because a subscriber channel was full.",
		})

		p.overloadWarnings = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "workflow",
			Name:      "overload_warnings_total",
			Help:      "Overload guard transitions into Warning.",
		})

		p.overloadOverrides = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "workflow",
			Name:      "overload_overrides_total",
			Help:      "Assignments confirmed despite a detected capacity breach.",
		})

		p.mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "workflow",
			Name:      "mutations_total",
			Help:      "Completed write operations by outcome.",
		}, []string{"op", "success"})

		collectors := []prometheus.Collector{
			p.cacheHits, p.cacheMisses, p.fetchesShared, p.fetchesDiscarded,
			p.invalidations, p.refetches, p.evictions, p.slowSubscribers,
			p.overloadWarnings, p.overloadOverrides, p.mutations,
		}
		for _, c := range collectors {
			// A duplicate registration keeps the existing collector; the
			// local instance still counts, it just isn't scraped twice.
			_ = p.reg.Register(c)
		}
	})
}

// RecordCacheHit increments the cache hit counter for the operation.
func (p *PrometheusCollector) RecordCacheHit(operation string) {
	p.ensureRegistered()
	p.cacheHits.WithLabelValues(operation).Inc()
}

// RecordCacheMiss increments the cache miss counter for the operation.
func (p *PrometheusCollector) RecordCacheMiss(operation string) {
	p.ensureRegistered()
	p.cacheMisses.WithLabelValues(operation).Inc()
}

// RecordFetchShared increments the shared-fetch counter for the operation.
func (p *PrometheusCollector) RecordFetchShared(operation string) {
	p.ensureRegistered()
	p.fetchesShared.WithLabelValues(operation).Inc()
}

// RecordFetchDiscarded increments the discarded-fetch counter for the operation.
func (p *PrometheusCollector) RecordFetchDiscarded(operation string) {
	p.ensureRegistered()
	p.fetchesDiscarded.WithLabelValues(operation).Inc()
}

// RecordInvalidation increments the invalidation counter for the tag.
func (p *PrometheusCollector) RecordInvalidation(tag string) {
	p.ensureRegistered()
	p.invalidations.WithLabelValues(tag).Inc()
}

// RecordRefetch increments the refetch counter for the operation.
func (p *PrometheusCollector) RecordRefetch(operation string) {
	p.ensureRegistered()
	p.refetches.WithLabelValues(operation).Inc()
}

// RecordEviction increments the eviction counter for the operation.
func (p *PrometheusCollector) RecordEviction(operation string) {
	p.ensureRegistered()
	p.evictions.WithLabelValues(operation).Inc()
}

// RecordSlowSubscriber increments the dropped-notification counter.
func (p *PrometheusCollector) RecordSlowSubscriber() {
	p.ensureRegistered()
	p.slowSubscribers.Inc()
}

// RecordOverloadWarning increments the overload warning counter.
func (p *PrometheusCollector) RecordOverloadWarning() {
	p.ensureRegistered()
	p.overloadWarnings.Inc()
}

// RecordOverloadOverride increments the overload override counter.
func (p *PrometheusCollector) RecordOverloadOverride() {
	p.ensureRegistered()
	p.overloadOverrides.Inc()
}

// RecordMutation increments the mutation counter with the outcome label.
func (p *PrometheusCollector) RecordMutation(operation string, success bool) {
	p.ensureRegistered()
	p.mutations.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

package cache

import (
	"sync"
	"time"

	"github.com/nhnasim333/smart-task-manager/types"
)

// Status is the lifecycle status of a cache entry.
type Status int

const (
	// StatusIdle is the initial status before any fetch was issued.
	StatusIdle Status = iota

	// StatusLoading indicates a fetch is in flight for this entry.
	StatusLoading

	// StatusSuccess indicates the entry holds the last successful result.
	StatusSuccess

	// StatusError indicates the most recent fetch failed.
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusSuccess:
		return "Success"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Snapshot is an immutable view of a cache entry at one point in time.
type Snapshot struct {
	// Status is the entry's lifecycle status.
	Status Status

	// Value is the last successful result, or nil if none exists yet.
	// During Loading and Error the previous successful value is retained.
	Value any

	// Err is the most recent fetch error, nil outside StatusError.
	Err error

	// Stale reports whether an invalidating write has occurred since the
	// value was fetched. A stale value must not be trusted until refetched.
	Stale bool
}

// entry is the per-key cache record. All fields behind mu; the immutable
// identity fields (key, op, provides, fetch) are set once at creation.
type entry struct {
	key      string
	op       Operation
	provides types.TagSet
	fetch    FetchFunc

	mu          sync.Mutex
	status      Status
	value       any
	err         error
	stale       bool
	inflight    bool
	lastSeq     uint64
	subscribers map[uint64]*subscriber
	evictTimer  *time.Timer
	evicted     bool
}

func newEntry(key string, q Query) *entry {
	return &entry{
		key:         key,
		op:          q.Op,
		provides:    Provides(q.Op),
		fetch:       q.Fetch,
		status:      StatusIdle,
		subscribers: make(map[uint64]*subscriber),
	}
}

// snapshotLocked builds a Snapshot. Caller holds e.mu.
func (e *entry) snapshotLocked() Snapshot {
	return Snapshot{
		Status: e.status,
		Value:  e.value,
		Err:    e.err,
		Stale:  e.stale,
	}
}

// notifyLocked fans the current snapshot out to every subscriber without
// blocking. Caller holds e.mu.
func (e *entry) notifyLocked(collector types.MetricsCollector) {
	snap := e.snapshotLocked()
	for _, sub := range e.subscribers {
		sub.trySend(snap, collector)
	}
}

// stopEvictTimerLocked cancels a pending eviction. Caller holds e.mu.
func (e *entry) stopEvictTimerLocked() {
	if e.evictTimer != nil {
		e.evictTimer.Stop()
		e.evictTimer = nil
	}
}

package cache

import (
	"sync"

	"github.com/nhnasim333/smart-task-manager/types"
)

// subscriber is one live observer of a cache entry.
type subscriber struct {
	ch     chan Snapshot
	mu     sync.Mutex
	closed bool
}

func newSubscriber() *subscriber {
	// Buffer size of 4 allows Loading -> Success -> stale -> Loading bursts
	// to queue without dropping updates when the observer is slow to read.
	return &subscriber{ch: make(chan Snapshot, 4)}
}

// trySend delivers a snapshot without blocking. A full channel drops the
// update; Handle.Current always reflects the authoritative state.
func (s *subscriber) trySend(snap Snapshot, collector types.MetricsCollector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- snap:
	default:
		collector.RecordSlowSubscriber()
	}
}

// close safely closes the subscriber's channel.
func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Handle is a live subscription to one cached query.
//
// The handle stays valid until passed to Store.Unsubscribe. Updates()
// yields change notifications; Current() reads the authoritative state
// directly and never misses an update.
type Handle struct {
	store *Store
	entry *entry
	id    uint64
	sub   *subscriber
}

// Updates returns the notification channel. The channel is closed when the
// handle is unsubscribed or the store shuts down.
//
// Notifications may be dropped under backpressure; treat them as a change
// signal and read Current for the state itself.
func (h *Handle) Updates() <-chan Snapshot {
	return h.sub.ch
}

// Current returns the entry's state as of now.
func (h *Handle) Current() Snapshot {
	h.entry.mu.Lock()
	defer h.entry.mu.Unlock()

	return h.entry.snapshotLocked()
}

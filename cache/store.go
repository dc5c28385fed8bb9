package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/nhnasim333/smart-task-manager/internal/keyhash"
	"github.com/nhnasim333/smart-task-manager/internal/logging"
	"github.com/nhnasim333/smart-task-manager/internal/metrics"
	"github.com/nhnasim333/smart-task-manager/types"
)

// FetchFunc performs the read behind a cached query.
//
// The context is owned by the store and is canceled on Close; honor it
// cooperatively. Implementations must not touch the store.
type FetchFunc func(ctx context.Context) (any, error)

// MutateFunc performs a write against the backend.
type MutateFunc func(ctx context.Context) (any, error)

// Query describes a cacheable read: the operation, the arguments that
// distinguish it from other calls of the same operation, and the fetch
// closure that executes it.
type Query struct {
	Op    Operation
	Args  any
	Fetch FetchFunc
}

// Mutation describes a write: the operation (which determines the
// invalidated tags) and the closure that executes it.
type Mutation struct {
	Op   Operation
	Args any
	Do   MutateFunc
}

// Store is the process-wide query cache.
//
// Thread Safety:
//   - All public methods are safe for concurrent use.
//   - Each entry carries its own lock; fetches run in goroutines and apply
//     their result under that lock, guarded by an issue sequence number so
//     only the most recently issued fetch per key wins.
//
// Lifecycle:
//   - Create with NewStore()
//   - Subscribe/Unsubscribe for reads, Mutate for writes
//   - Call Close() on shutdown; in-flight fetches are canceled and their
//     results discarded.
type Store struct {
	grace     time.Duration
	logger    types.Logger
	collector types.MetricsCollector

	entries *xsync.Map[string, *entry]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool

	nextSubscriberID atomic.Uint64
}

// NewStore creates a new query cache store.
//
// Parameters:
//   - grace: Retention window for entries whose subscriber count reached
//     zero, so rapid re-subscription survives without a refetch
//   - logger: Logger instance (nop logger if nil)
//   - collector: Metrics collector (nop collector if nil)
//
// Returns:
//   - *Store: Initialized store ready for subscriptions
func NewStore(grace time.Duration, logger types.Logger, collector types.MetricsCollector) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = metrics.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Store{
		grace:     grace,
		logger:    logger,
		collector: collector,
		entries:   xsync.NewMap[string, *entry](),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Subscribe registers a live observer for the query.
//
// If no cached value exists, or the cached value is stale, a fetch is
// triggered. Concurrent subscribers to the same key share a single
// in-flight fetch. The returned handle carries the current snapshot via
// Current() and subsequent changes via Updates().
//
// Parameters:
//   - ctx: Checked for cancellation at issue time; the fetch itself runs
//     under the store's lifetime context so one subscriber's cancellation
//     cannot fail the shared request
//   - q: Query to observe
//
// Returns:
//   - *Handle: Live subscription handle; release with Unsubscribe
//   - error: ErrStoreClosed, ErrFetchRequired, key normalization or
//     context errors
func (s *Store) Subscribe(ctx context.Context, q Query) (*Handle, error) {
	if s.closed.Load() {
		return nil, types.ErrStoreClosed
	}
	if q.Fetch == nil {
		return nil, ErrFetchRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := keyhash.Key(q.Op.String(), q.Args)
	if err != nil {
		return nil, err
	}

	// An entry loaded just before its eviction completed must be abandoned
	// and re-created; the evictor removes it from the map before releasing
	// the entry lock, so the retry observes a fresh map slot.
	var e *entry
	for {
		e, _ = s.entries.LoadOrCompute(key, func() (*entry, bool) {
			return newEntry(key, q), false
		})
		e.mu.Lock()
		if !e.evicted {
			break
		}
		e.mu.Unlock()
	}

	e.stopEvictTimerLocked()

	id := s.nextSubscriberID.Add(1)
	sub := newSubscriber()
	e.subscribers[id] = sub

	switch {
	case e.inflight:
		s.collector.RecordFetchShared(e.op.String())
	case e.status == StatusSuccess && !e.stale:
		s.collector.RecordCacheHit(e.op.String())
	default:
		s.collector.RecordCacheMiss(e.op.String())
		s.issueFetchLocked(e)
	}

	// Deliver the current state immediately, mirroring the subscribe-time
	// snapshot delivery of the assignment state machine.
	sub.trySend(e.snapshotLocked(), s.collector)
	e.mu.Unlock()

	return &Handle{store: s, entry: e, id: id, sub: sub}, nil
}

// Unsubscribe releases a subscription handle.
//
// The underlying fetch, if any, is not canceled; its result is applied to
// the cache unless the entry has been evicted by then. When the entry's
// subscriber count reaches zero it is retained for the grace window and
// then evicted.
//
// Safe to call multiple times with the same handle.
func (s *Store) Unsubscribe(h *Handle) {
	if h == nil || h.store != s {
		return
	}

	e := h.entry
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.subscribers[h.id]; !ok {
		return
	}
	delete(e.subscribers, h.id)
	h.sub.close()

	if len(e.subscribers) == 0 && !e.evicted && !s.closed.Load() {
		e.evictTimer = time.AfterFunc(s.grace, func() {
			s.evict(e)
		})
	}
}

// Mutate performs a write operation.
//
// On success the tag dependency graph determines which cached reads are
// now stale: they are marked, and those with live subscribers are
// refetched. On failure the cache is left entirely untouched and the error
// is returned to the caller. Mutate never retries.
//
// Parameters:
//   - ctx: Context for the write request
//   - m: Mutation to execute
//
// Returns:
//   - any: The write's result value, when the operation produces one
//   - error: The write's error, unchanged
func (s *Store) Mutate(ctx context.Context, m Mutation) (any, error) {
	if s.closed.Load() {
		return nil, types.ErrStoreClosed
	}
	if m.Do == nil {
		return nil, ErrMutationRequired
	}

	value, err := m.Do(ctx)
	s.collector.RecordMutation(m.Op.String(), err == nil)
	if err != nil {
		// A failed write performs no invalidation.
		return nil, err
	}

	s.invalidate(m.Op)

	return value, nil
}

// Close shuts the store down.
//
// All subscriber channels are closed, pending evictions are canceled, and
// in-flight fetches are canceled and discarded. Subsequent calls return
// ErrStoreClosed.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return types.ErrStoreClosed
	}

	s.cancel()

	s.entries.Range(func(_ string, e *entry) bool {
		e.mu.Lock()
		e.stopEvictTimerLocked()
		e.evicted = true
		for id, sub := range e.subscribers {
			delete(e.subscribers, id)
			sub.close()
		}
		e.mu.Unlock()

		return true
	})

	s.wg.Wait()
	s.logger.Debug("query cache store closed")

	return nil
}

// issueFetchLocked starts a fetch for the entry. Caller holds e.mu.
//
// Bumping lastSeq supersedes any fetch still in flight for this key:
// last-issued-wins, enforced at apply time in runFetch.
func (s *Store) issueFetchLocked(e *entry) {
	e.lastSeq++
	e.inflight = true
	e.status = StatusLoading
	e.err = nil

	seq := e.lastSeq
	s.wg.Add(1)
	go s.runFetch(e, seq)
}

// runFetch executes the fetch and applies its result if it is still the
// most recently issued request for the key.
func (s *Store) runFetch(e *entry, seq uint64) {
	defer s.wg.Done()

	value, err := e.fetch(s.ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.evicted || seq != e.lastSeq {
		// Superseded by a newer request, or abandoned after eviction.
		s.collector.RecordFetchDiscarded(e.op.String())
		return
	}

	e.inflight = false
	if err != nil {
		e.status = StatusError
		e.err = err
		s.logger.Warn("query fetch failed", "op", e.op.String(), "error", err)
	} else {
		e.status = StatusSuccess
		e.value = value
		e.err = nil
		e.stale = false
	}

	e.notifyLocked(s.collector)
}

// invalidate marks every entry intersecting the operation's invalidated
// tags stale and refetches the subscribed ones.
//
// Refetches are queued per key, not globally serialized; refetches for
// independent keys may complete in any relative order.
func (s *Store) invalidate(op Operation) {
	affected := Invalidates(op)
	if affected.Empty() {
		return
	}

	for _, tag := range affected.Tags() {
		s.collector.RecordInvalidation(tag.String())
	}

	s.entries.Range(func(_ string, e *entry) bool {
		if !e.provides.Intersects(affected) {
			return true
		}

		e.mu.Lock()
		if !e.evicted {
			e.stale = true
			if len(e.subscribers) > 0 {
				s.collector.RecordRefetch(e.op.String())
				s.issueFetchLocked(e)
				e.notifyLocked(s.collector)
			}
		}
		e.mu.Unlock()

		return true
	})

	s.logger.Debug("write invalidated cached reads", "op", op.String(), "tags", affected.String())
}

// evict removes an entry whose grace window expired with no subscribers.
func (s *Store) evict(e *entry) {
	e.mu.Lock()
	if e.evicted || len(e.subscribers) > 0 || s.closed.Load() {
		e.mu.Unlock()
		return
	}
	e.evicted = true
	// Remove from the map before releasing the lock so a racing Subscribe
	// that already loaded this entry re-creates a fresh one.
	s.entries.Delete(e.key)
	e.mu.Unlock()

	s.collector.RecordEviction(e.op.String())
	s.logger.Debug("cache entry evicted", "key", e.key)
}

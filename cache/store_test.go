package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhnasim333/smart-task-manager/types"
)

const testGrace = 50 * time.Millisecond

// waitForStatus polls the handle until the entry reaches the wanted status.
func waitForStatus(t *testing.T, h *Handle, want Status) Snapshot {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		snap := h.Current()
		if snap.Status == want {
			return snap
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for status %s, last status %s", want, snap.Status)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func staticFetch(value any) FetchFunc {
	return func(_ context.Context) (any, error) {
		return value, nil
	}
}

func TestStore_SubscribeFetchesOnce(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	h, err := store.Subscribe(context.Background(), Query{
		Op: OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			calls.Add(1)
			return []types.Task{{ID: "t1", Title: "write report"}}, nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(h)

	snap := waitForStatus(t, h, StatusSuccess)
	require.Equal(t, int32(1), calls.Load())
	require.False(t, snap.Stale)
	require.NoError(t, snap.Err)

	tasks, ok := snap.Value.([]types.Task)
	require.True(t, ok)
	require.Len(t, tasks, 1)
	require.Equal(t, "t1", tasks[0].ID)
}

func TestStore_SubscribeValidation(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	t.Run("missing fetch func", func(t *testing.T) {
		_, err := store.Subscribe(context.Background(), Query{Op: OpGetTasks})
		require.ErrorIs(t, err, ErrFetchRequired)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Subscribe(ctx, Query{Op: OpGetTasks, Fetch: staticFetch(nil)})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_ConcurrentSubscribersShareOneFetch(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	gate := make(chan struct{})
	query := Query{
		Op: OpGetTeams,
		Fetch: func(_ context.Context) (any, error) {
			calls.Add(1)
			<-gate
			return []types.Team{{ID: "team1", Name: "Platform"}}, nil
		},
	}

	const subscribers = 8
	handles := make([]*Handle, 0, subscribers)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < subscribers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := store.Subscribe(context.Background(), query)
			require.NoError(t, err)
			mu.Lock()
			handles = append(handles, h)
			mu.Unlock()
		}()
	}
	wg.Wait()
	close(gate)

	for _, h := range handles {
		snap := waitForStatus(t, h, StatusSuccess)
		teams, ok := snap.Value.([]types.Team)
		require.True(t, ok)
		require.Equal(t, "Platform", teams[0].Name)
	}
	require.Equal(t, int32(1), calls.Load(), "all subscribers must share one in-flight fetch")

	for _, h := range handles {
		store.Unsubscribe(h)
	}
}

func TestStore_CacheHitServesWithoutRefetch(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	query := Query{
		Op: OpGetProjects,
		Fetch: func(_ context.Context) (any, error) {
			calls.Add(1)
			return []types.Project{{ID: "p1"}}, nil
		},
	}

	h1, err := store.Subscribe(context.Background(), query)
	require.NoError(t, err)
	waitForStatus(t, h1, StatusSuccess)

	h2, err := store.Subscribe(context.Background(), query)
	require.NoError(t, err)
	snap := h2.Current()
	require.Equal(t, StatusSuccess, snap.Status)
	require.Equal(t, int32(1), calls.Load(), "fresh cached value must be served without a fetch")

	store.Unsubscribe(h1)
	store.Unsubscribe(h2)
}

func TestStore_DistinctArgsAreDistinctEntries(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	fetch := func(_ context.Context) (any, error) {
		calls.Add(1)
		return nil, nil
	}

	h1, err := store.Subscribe(context.Background(), Query{Op: OpGetTask, Args: "t1", Fetch: fetch})
	require.NoError(t, err)
	h2, err := store.Subscribe(context.Background(), Query{Op: OpGetTask, Args: "t2", Fetch: fetch})
	require.NoError(t, err)

	waitForStatus(t, h1, StatusSuccess)
	waitForStatus(t, h2, StatusSuccess)
	require.Equal(t, int32(2), calls.Load())

	store.Unsubscribe(h1)
	store.Unsubscribe(h2)
}

func TestStore_MutateInvalidatesAndRefetches(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var taskFetches, projectFetches atomic.Int32
	hTasks, err := store.Subscribe(context.Background(), Query{
		Op: OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			taskFetches.Add(1)
			return nil, nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(hTasks)

	hProjects, err := store.Subscribe(context.Background(), Query{
		Op: OpGetProjects,
		Fetch: func(_ context.Context) (any, error) {
			projectFetches.Add(1)
			return nil, nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(hProjects)

	waitForStatus(t, hTasks, StatusSuccess)
	waitForStatus(t, hProjects, StatusSuccess)

	// Creating a task invalidates Tasks and Teams, not Projects.
	_, err = store.Mutate(context.Background(), Mutation{
		Op: OpCreateTask,
		Do: func(_ context.Context) (any, error) {
			return &types.Task{ID: "t2"}, nil
		},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return taskFetches.Load() == 2
	}, 2*time.Second, 5*time.Millisecond, "subscribed task query must refetch")

	snap := waitForStatus(t, hTasks, StatusSuccess)
	require.False(t, snap.Stale)
	require.Equal(t, int32(1), projectFetches.Load(), "project query must be untouched")
}

func TestStore_FailedMutateLeavesCacheUntouched(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	h, err := store.Subscribe(context.Background(), Query{
		Op: OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			calls.Add(1)
			return nil, nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(h)
	waitForStatus(t, h, StatusSuccess)

	wantErr := errors.New("server rejected the write")
	_, err = store.Mutate(context.Background(), Mutation{
		Op: OpCreateTask,
		Do: func(_ context.Context) (any, error) {
			return nil, wantErr
		},
	})
	require.ErrorIs(t, err, wantErr)

	// No invalidation, no refetch, not stale.
	time.Sleep(20 * time.Millisecond)
	snap := h.Current()
	require.Equal(t, StatusSuccess, snap.Status)
	require.False(t, snap.Stale)
	require.Equal(t, int32(1), calls.Load())
}

func TestStore_MutateValidation(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	_, err := store.Mutate(context.Background(), Mutation{Op: OpCreateTask})
	require.ErrorIs(t, err, ErrMutationRequired)
}

func TestStore_SupersededFetchIsDiscarded(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	// The first fetch blocks until released; an invalidation issues a second
	// fetch before the first completes. The first result must never clobber
	// the second.
	firstGate := make(chan struct{})
	var calls atomic.Int32
	h, err := store.Subscribe(context.Background(), Query{
		Op: OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			n := calls.Add(1)
			if n == 1 {
				<-firstGate
				return "stale result", nil
			}
			return "fresh result", nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(h)

	_, err = store.Mutate(context.Background(), Mutation{
		Op: OpCreateTask,
		Do: func(_ context.Context) (any, error) { return nil, nil },
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return calls.Load() == 2
	}, 2*time.Second, 5*time.Millisecond)

	snap := waitForStatus(t, h, StatusSuccess)
	require.Equal(t, "fresh result", snap.Value)

	// Releasing the superseded fetch must not change the value.
	close(firstGate)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, "fresh result", h.Current().Value)
}

func TestStore_StaleWithoutSubscribersRefetchesLazily(t *testing.T) {
	store := NewStore(time.Second, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	query := Query{
		Op: OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			calls.Add(1)
			return calls.Load(), nil
		},
	}

	h, err := store.Subscribe(context.Background(), query)
	require.NoError(t, err)
	waitForStatus(t, h, StatusSuccess)
	store.Unsubscribe(h)

	// The entry is inside its grace window with zero subscribers; the write
	// marks it stale but must not refetch it eagerly.
	_, err = store.Mutate(context.Background(), Mutation{
		Op: OpCreateTask,
		Do: func(_ context.Context) (any, error) { return nil, nil },
	})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load(), "unsubscribed stale entry must not refetch")

	// Re-subscription sees the stale value and triggers the refetch.
	h2, err := store.Subscribe(context.Background(), query)
	require.NoError(t, err)
	defer store.Unsubscribe(h2)

	require.Eventually(t, func() bool {
		return calls.Load() == 2
	}, 2*time.Second, 5*time.Millisecond)
	snap := waitForStatus(t, h2, StatusSuccess)
	require.Equal(t, int32(2), snap.Value)
}

func TestStore_GraceEviction(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	query := Query{
		Op: OpGetTeams,
		Fetch: func(_ context.Context) (any, error) {
			calls.Add(1)
			return nil, nil
		},
	}

	t.Run("resubscribe within grace keeps the value", func(t *testing.T) {
		h, err := store.Subscribe(context.Background(), query)
		require.NoError(t, err)
		waitForStatus(t, h, StatusSuccess)
		store.Unsubscribe(h)

		h2, err := store.Subscribe(context.Background(), query)
		require.NoError(t, err)
		require.Equal(t, StatusSuccess, h2.Current().Status)
		require.Equal(t, int32(1), calls.Load())
		store.Unsubscribe(h2)
	})

	t.Run("resubscribe after grace refetches", func(t *testing.T) {
		time.Sleep(3 * testGrace)

		h, err := store.Subscribe(context.Background(), query)
		require.NoError(t, err)
		waitForStatus(t, h, StatusSuccess)
		require.Equal(t, int32(2), calls.Load(), "evicted entry must fetch again")
		store.Unsubscribe(h)
	})
}

func TestStore_UpdatesDeliversTransitions(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	gate := make(chan struct{})
	h, err := store.Subscribe(context.Background(), Query{
		Op: OpGetDashboardStats,
		Fetch: func(_ context.Context) (any, error) {
			<-gate
			return &types.DashboardStats{TotalTasks: 3}, nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(h)

	snap := <-h.Updates()
	require.Equal(t, StatusLoading, snap.Status)

	close(gate)
	snap = <-h.Updates()
	require.Equal(t, StatusSuccess, snap.Status)
	stats, ok := snap.Value.(*types.DashboardStats)
	require.True(t, ok)
	require.Equal(t, 3, stats.TotalTasks)
}

func TestStore_FetchErrorRetainsPreviousValue(t *testing.T) {
	store := NewStore(testGrace, nil, nil)
	defer store.Close()

	var calls atomic.Int32
	wantErr := errors.New("backend unavailable")
	h, err := store.Subscribe(context.Background(), Query{
		Op: OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			if calls.Add(1) == 1 {
				return "good value", nil
			}
			return nil, wantErr
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(h)
	waitForStatus(t, h, StatusSuccess)

	_, err = store.Mutate(context.Background(), Mutation{
		Op: OpCreateTask,
		Do: func(_ context.Context) (any, error) { return nil, nil },
	})
	require.NoError(t, err)

	snap := waitForStatus(t, h, StatusError)
	require.ErrorIs(t, snap.Err, wantErr)
	require.Equal(t, "good value", snap.Value, "failed refetch keeps the previous value")
	require.True(t, snap.Stale)
}

func TestStore_Close(t *testing.T) {
	store := NewStore(testGrace, nil, nil)

	h, err := store.Subscribe(context.Background(), Query{
		Op:    OpGetTasks,
		Fetch: staticFetch(nil),
	})
	require.NoError(t, err)
	waitForStatus(t, h, StatusSuccess)

	require.NoError(t, store.Close())
	require.ErrorIs(t, store.Close(), types.ErrStoreClosed)

	// Subscriber channels are closed on shutdown.
	for range h.Updates() {
	}

	_, err = store.Subscribe(context.Background(), Query{Op: OpGetTasks, Fetch: staticFetch(nil)})
	require.ErrorIs(t, err, types.ErrStoreClosed)

	_, err = store.Mutate(context.Background(), Mutation{
		Op: OpCreateTask,
		Do: func(_ context.Context) (any, error) { return nil, nil },
	})
	require.ErrorIs(t, err, types.ErrStoreClosed)
}

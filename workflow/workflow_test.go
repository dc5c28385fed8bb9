package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhnasim333/smart-task-manager/cache"
	"github.com/nhnasim333/smart-task-manager/rest"
	"github.com/nhnasim333/smart-task-manager/types"
)

// taskBackend is a minimal stub that records task POSTs and echoes the
// created task back.
func taskBackend(t *testing.T, posts *atomic.Int32, lastPayload *atomic.Value) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/tasks":
			posts.Add(1)

			var payload types.TaskPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			lastPayload.Store(payload)

			_ = json.NewEncoder(w).Encode(types.Task{
				ID:                 "task-1",
				Title:              payload.Title,
				Description:        payload.Description,
				ProjectID:          payload.ProjectID,
				TeamID:             payload.TeamID,
				AssignedMemberID:   payload.AssignedMemberID,
				AssignedMemberName: payload.AssignedMemberName,
				Priority:           payload.Priority,
				Status:             payload.Status,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/tasks":
			_ = json.NewEncoder(w).Encode([]types.Task{})
		case r.Method == http.MethodPost && r.URL.Path == "/tasks/reassign":
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Reassigned 2 task(s)"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
		}
	}))
}

func newWorkflow(t *testing.T, baseURL string) (*Workflow, *cache.Store) {
	t.Helper()

	store := cache.NewStore(50*time.Millisecond, nil, nil)
	t.Cleanup(func() { _ = store.Close() })

	wf, err := New(store, rest.NewClient(baseURL), nil, nil)
	require.NoError(t, err)

	return wf, store
}

func TestNew_Validation(t *testing.T) {
	store := cache.NewStore(time.Second, nil, nil)
	defer store.Close()

	t.Run("missing store", func(t *testing.T) {
		_, err := New(nil, rest.NewClient("http://localhost"), nil, nil)
		require.ErrorIs(t, err, types.ErrStoreRequired)
	})

	t.Run("missing rest client", func(t *testing.T) {
		_, err := New(store, nil, nil, nil)
		require.ErrorIs(t, err, types.ErrRESTClientRequired)
	})
}

func TestWorkflow_CreateTaskValidation(t *testing.T) {
	var posts atomic.Int32
	var lastPayload atomic.Value
	srv := taskBackend(t, &posts, &lastPayload)
	defer srv.Close()

	wf, _ := newWorkflow(t, srv.URL)

	_, err := wf.CreateTask(context.Background(), types.TaskDraft{Title: "no project"}, false)
	require.ErrorIs(t, err, types.ErrValidation)

	_, err = wf.CreateTask(context.Background(), types.TaskDraft{ProjectID: "p1"}, false)
	require.ErrorIs(t, err, types.ErrValidation)

	require.Equal(t, int32(0), posts.Load(), "validation failures must not reach the server")
}

// Team "Dev" has Alice at capacity 2 with 2 open tasks. Creating a task
// assigned to her without an override is a local no-op; resubmitting with
// the override sends exactly one POST carrying her id.
func TestWorkflow_OverloadGate(t *testing.T) {
	var posts atomic.Int32
	var lastPayload atomic.Value
	srv := taskBackend(t, &posts, &lastPayload)
	defer srv.Close()

	wf, _ := newWorkflow(t, srv.URL)

	wf.SetTeam(devTeam())
	require.Equal(t, GuardWarning, wf.SelectMember("alice"))

	draft := types.TaskDraft{Title: "Ship the release", ProjectID: "p1"}

	_, err := wf.CreateTask(context.Background(), draft, false)
	require.ErrorIs(t, err, types.ErrOverloadPending)
	require.Equal(t, int32(0), posts.Load(), "gated submission must not send a request")

	task, err := wf.CreateTask(context.Background(), draft, true)
	require.NoError(t, err)
	require.Equal(t, int32(1), posts.Load(), "override must send exactly one request")
	require.Equal(t, "alice", task.AssignedMemberID)
	require.Equal(t, "Alice", task.AssignedMemberName)

	payload := lastPayload.Load().(types.TaskPayload)
	require.Equal(t, "alice", payload.AssignedMemberID)
	require.Equal(t, "team-dev", payload.TeamID)
}

func TestWorkflow_CreateTaskDenormalizesDefaults(t *testing.T) {
	var posts atomic.Int32
	var lastPayload atomic.Value
	srv := taskBackend(t, &posts, &lastPayload)
	defer srv.Close()

	wf, _ := newWorkflow(t, srv.URL)

	// No team, no selection: unassigned sentinel on both wire fields.
	_, err := wf.CreateTask(context.Background(), types.TaskDraft{
		Title:     "Untriaged chore",
		ProjectID: "p1",
	}, false)
	require.NoError(t, err)

	payload := lastPayload.Load().(types.TaskPayload)
	require.Equal(t, types.UnassignedMember, payload.AssignedMemberID)
	require.Equal(t, types.UnassignedMember, payload.AssignedMemberName)
	require.Equal(t, types.PriorityMedium, payload.Priority)
	require.Equal(t, types.StatusPending, payload.Status)
}

func TestWorkflow_CreateTaskUnderCapacity(t *testing.T) {
	var posts atomic.Int32
	var lastPayload atomic.Value
	srv := taskBackend(t, &posts, &lastPayload)
	defer srv.Close()

	wf, _ := newWorkflow(t, srv.URL)

	wf.SetTeam(devTeam())
	require.Equal(t, GuardClear, wf.SelectMember("bob"))

	_, err := wf.CreateTask(context.Background(), types.TaskDraft{
		Title:     "Add an index",
		ProjectID: "p1",
		Priority:  types.PriorityHigh,
		Status:    types.StatusInProgress,
	}, false)
	require.NoError(t, err)
	require.Equal(t, int32(1), posts.Load())

	payload := lastPayload.Load().(types.TaskPayload)
	require.Equal(t, "bob", payload.AssignedMemberID)
	require.Equal(t, "Bob", payload.AssignedMemberName)
	require.Equal(t, types.PriorityHigh, payload.Priority)
	require.Equal(t, types.StatusInProgress, payload.Status)
}

func TestWorkflow_SuggestAssignee(t *testing.T) {
	t.Run("suggestion is selected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/tasks/auto-assign", r.URL.Path)
			_ = json.NewEncoder(w).Encode(types.AssignSuggestion{
				Success:         true,
				SuggestedMember: &types.Member{ID: "bob", Name: "Bob", Capacity: 5, CurrentTasks: 1},
			})
		}))
		defer srv.Close()

		wf, _ := newWorkflow(t, srv.URL)
		wf.SetTeam(devTeam())

		member, err := wf.SuggestAssignee(context.Background(), "team-dev")
		require.NoError(t, err)
		require.Equal(t, "Bob", member.Name)

		selected, ok := wf.Guard().Selection()
		require.True(t, ok)
		require.Equal(t, "bob", selected.ID)
	})

	t.Run("declined suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(types.AssignSuggestion{
				Success: false,
				Message: "All members are at full capacity",
			})
		}))
		defer srv.Close()

		wf, _ := newWorkflow(t, srv.URL)

		_, err := wf.SuggestAssignee(context.Background(), "team-dev")
		require.ErrorIs(t, err, types.ErrNoSuggestion)
		require.Contains(t, err.Error(), "All members are at full capacity")
	})
}

func TestWorkflow_ReassignAllInvalidatesTaskReads(t *testing.T) {
	var posts atomic.Int32
	var lastPayload atomic.Value
	srv := taskBackend(t, &posts, &lastPayload)
	defer srv.Close()

	wf, store := newWorkflow(t, srv.URL)

	var fetches atomic.Int32
	handle, err := store.Subscribe(context.Background(), cache.Query{
		Op: cache.OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			fetches.Add(1)
			return nil, nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(handle)

	require.Eventually(t, func() bool {
		return fetches.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	message, err := wf.ReassignAll(context.Background(), "team-dev")
	require.NoError(t, err)
	require.Equal(t, "Reassigned 2 task(s)", message)

	require.Eventually(t, func() bool {
		return fetches.Load() == 2
	}, 2*time.Second, 5*time.Millisecond, "subscribed task list must refetch after reassign")
}

func TestWorkflow_FailedCreateLeavesCacheUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/tasks" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Title is required"})
			return
		}
		_ = json.NewEncoder(w).Encode([]types.Task{})
	}))
	defer srv.Close()

	wf, store := newWorkflow(t, srv.URL)

	var fetches atomic.Int32
	handle, err := store.Subscribe(context.Background(), cache.Query{
		Op: cache.OpGetTasks,
		Fetch: func(_ context.Context) (any, error) {
			fetches.Add(1)
			return nil, nil
		},
	})
	require.NoError(t, err)
	defer store.Unsubscribe(handle)

	require.Eventually(t, func() bool {
		return fetches.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	_, err = wf.CreateTask(context.Background(), types.TaskDraft{
		Title:     "will fail",
		ProjectID: "p1",
	}, false)
	require.ErrorIs(t, err, types.ErrServer)
	require.Equal(t, "Title is required", types.UserMessage(err))

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(1), fetches.Load(), "failed write must not invalidate")
	require.False(t, handle.Current().Stale)
}

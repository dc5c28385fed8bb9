package workflow

import (
	"context"
	"fmt"

	"github.com/nhnasim333/smart-task-manager/cache"
	"github.com/nhnasim333/smart-task-manager/internal/logging"
	"github.com/nhnasim333/smart-task-manager/internal/metrics"
	"github.com/nhnasim333/smart-task-manager/rest"
	"github.com/nhnasim333/smart-task-manager/types"
)

// Workflow drives the capacity-aware assignment flow: pick a team, pick a
// member (or ask the advisor), and submit the task through the query
// cache so dependent reads invalidate.
//
// Thread Safety: safe for concurrent use, though the guard models a
// single user's in-progress form and is typically driven from one
// goroutine.
type Workflow struct {
	store     *cache.Store
	api       *rest.Client
	guard     *OverloadGuard
	logger    types.Logger
	collector types.MetricsCollector
}

// New creates an assignment workflow.
//
// Parameters:
//   - store: Query cache store routing the writes
//   - api: REST client executing them
//   - logger: Logger instance (nop logger if nil)
//   - collector: Metrics collector (nop collector if nil)
//
// Returns:
//   - *Workflow: Initialized workflow with a clear guard
//   - error: types.ErrStoreRequired or types.ErrRESTClientRequired
func New(store *cache.Store, api *rest.Client, logger types.Logger, collector types.MetricsCollector) (*Workflow, error) {
	if store == nil {
		return nil, types.ErrStoreRequired
	}
	if api == nil {
		return nil, types.ErrRESTClientRequired
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = metrics.NewNop()
	}

	return &Workflow{
		store:     store,
		api:       api,
		guard:     NewOverloadGuard(),
		logger:    logger,
		collector: collector,
	}, nil
}

// Guard exposes the overload guard for direct state inspection.
func (w *Workflow) Guard() *OverloadGuard {
	return w.guard
}

// SetTeam installs the team backing the assignment form.
func (w *Workflow) SetTeam(team *types.Team) GuardState {
	return w.guard.SetTeam(team)
}

// SelectMember records the member selection.
//
// Selecting a member at or above capacity moves the guard to Warning;
// task submission is then gated until the caller either overrides or
// changes the selection.
func (w *Workflow) SelectMember(memberID string) GuardState {
	state := w.guard.SelectMember(memberID)
	if state == GuardWarning {
		w.collector.RecordOverloadWarning()
		if member, ok := w.guard.Overloaded(); ok {
			w.logger.Warn("selected member is over capacity",
				"member", member.Name,
				"currentTasks", member.CurrentTasks,
				"capacity", member.Capacity)
		}
	}

	return state
}

// SuggestAssignee asks the assignment advisor for a member on the given
// team and, on success, selects the suggestion.
//
// A declined suggestion (every member at capacity, say) surfaces as
// types.ErrNoSuggestion carrying the advisor's message.
func (w *Workflow) SuggestAssignee(ctx context.Context, teamID string) (*types.Member, error) {
	suggestion, err := w.api.AutoAssign(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !suggestion.Success || suggestion.SuggestedMember == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNoSuggestion, suggestion.Message)
	}

	member := suggestion.SuggestedMember
	w.guard.SelectMember(member.ID)
	w.logger.Info("advisor suggested assignee", "member", member.Name, "team", teamID)

	return member, nil
}

// CreateTask validates the draft, applies the overload gate, and submits
// the create through the cache store.
//
// Parameters:
//   - ctx: Context for the request
//   - draft: Caller-supplied task fields; empty Priority defaults to
//     Medium, empty Status to Pending
//   - override: Explicit confirmation to proceed despite a Warning
//
// Returns:
//   - *types.Task: The created task as returned by the server
//   - error: types.ErrValidation before any request; types.ErrOverloadPending
//     when gated; otherwise the request error
func (w *Workflow) CreateTask(ctx context.Context, draft types.TaskDraft, override bool) (*types.Task, error) {
	if err := w.gate(draft, override); err != nil {
		return nil, err
	}

	payload := w.buildPayload(draft)
	value, err := w.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpCreateTask,
		Args: payload,
		Do: func(ctx context.Context) (any, error) {
			return w.api.CreateTask(ctx, payload)
		},
	})
	if err != nil {
		return nil, err
	}

	task := value.(*types.Task)
	w.logger.Info("task created", "task", task.ID, "assignee", payload.AssignedMemberName)

	return task, nil
}

// UpdateTask validates the draft, applies the overload gate, and submits
// the update through the cache store.
func (w *Workflow) UpdateTask(ctx context.Context, id string, draft types.TaskDraft, override bool) (*types.Task, error) {
	if err := w.gate(draft, override); err != nil {
		return nil, err
	}

	payload := w.buildPayload(draft)
	value, err := w.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpUpdateTask,
		Args: payload,
		Do: func(ctx context.Context) (any, error) {
			return w.api.UpdateTask(ctx, id, payload)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*types.Task), nil
}

// DeleteTask deletes a task through the cache store.
func (w *Workflow) DeleteTask(ctx context.Context, id string) error {
	_, err := w.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpDeleteTask,
		Args: id,
		Do: func(ctx context.Context) (any, error) {
			return nil, w.api.DeleteTask(ctx, id)
		},
	})

	return err
}

// ReassignAll triggers a bulk rebalance of the team's tasks through the
// cache store, so task lists, team load numbers, and the activity log all
// refetch on success.
//
// Returns:
//   - string: The server's summary message
//   - error: The request error, with the cache untouched on failure
func (w *Workflow) ReassignAll(ctx context.Context, teamID string) (string, error) {
	value, err := w.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpReassignTasks,
		Args: teamID,
		Do: func(ctx context.Context) (any, error) {
			return w.api.Reassign(ctx, teamID)
		},
	})
	if err != nil {
		return "", err
	}

	message := value.(string)
	w.logger.Info("tasks reassigned", "team", teamID, "result", message)

	return message, nil
}

// gate runs the local checks that must pass before any request is sent.
func (w *Workflow) gate(draft types.TaskDraft, override bool) error {
	if draft.Title == "" || draft.ProjectID == "" {
		return fmt.Errorf("%w: title and project are required", types.ErrValidation)
	}

	if w.guard.State() == GuardWarning {
		if !override {
			return types.ErrOverloadPending
		}
		w.collector.RecordOverloadOverride()
		if member, ok := w.guard.Overloaded(); ok {
			w.logger.Warn("overload override confirmed", "member", member.Name)
		}
	}

	return nil
}

// buildPayload denormalizes the draft into the wire payload using the
// guard's current team and member selection.
func (w *Workflow) buildPayload(draft types.TaskDraft) types.TaskPayload {
	payload := types.TaskPayload{
		Title:              draft.Title,
		Description:        draft.Description,
		ProjectID:          draft.ProjectID,
		TeamID:             w.guard.TeamID(),
		AssignedMemberID:   types.UnassignedMember,
		AssignedMemberName: types.UnassignedMember,
		Priority:           draft.Priority,
		Status:             draft.Status,
	}
	if member, ok := w.guard.Selection(); ok {
		payload.AssignedMemberID = member.ID
		payload.AssignedMemberName = member.Name
	}
	if payload.Priority == "" {
		payload.Priority = types.PriorityMedium
	}
	if payload.Status == "" {
		payload.Status = types.StatusPending
	}

	return payload
}

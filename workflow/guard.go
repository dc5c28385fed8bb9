package workflow

import (
	"sync"

	"github.com/nhnasim333/smart-task-manager/types"
)

// GuardState is the overload guard's current verdict on the selection.
type GuardState int

const (
	// GuardClear means the selection is safe to submit.
	GuardClear GuardState = iota

	// GuardWarning means the selected member is at or above capacity and a
	// submission needs an explicit override.
	GuardWarning
)

// String returns the string representation of the guard state.
func (s GuardState) String() string {
	switch s {
	case GuardClear:
		return "Clear"
	case GuardWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// OverloadGuard watches a team/member selection for capacity breaches.
//
// Thread Safety: all methods are safe for concurrent use.
type OverloadGuard struct {
	mu       sync.Mutex
	team     *types.Team
	memberID string
	state    GuardState
}

// NewOverloadGuard creates a guard with no team and no selection.
func NewOverloadGuard() *OverloadGuard {
	return &OverloadGuard{}
}

// SetTeam installs the team backing the member selection and re-evaluates
// the current selection against it, since a fresher team read may carry
// different load numbers.
func (g *OverloadGuard) SetTeam(team *types.Team) GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.team = team

	return g.evaluateLocked()
}

// SelectMember records the member selection and returns the resulting
// state. An empty id or the unassigned sentinel clears the selection.
func (g *OverloadGuard) SelectMember(memberID string) GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	if memberID == types.UnassignedMember {
		memberID = ""
	}
	g.memberID = memberID

	return g.evaluateLocked()
}

// ClearSelection drops the member selection and returns the guard to
// Clear.
func (g *OverloadGuard) ClearSelection() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.memberID = ""
	g.state = GuardClear
}

// State returns the current guard state.
func (g *OverloadGuard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

// Overloaded returns the member that triggered the Warning, when the
// guard is in Warning.
func (g *OverloadGuard) Overloaded() (types.Member, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GuardWarning || g.team == nil {
		return types.Member{}, false
	}

	return g.team.FindMember(g.memberID)
}

// Selection returns the selected member, when one is selected and present
// on the current team.
func (g *OverloadGuard) Selection() (types.Member, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.team == nil || g.memberID == "" {
		return types.Member{}, false
	}

	return g.team.FindMember(g.memberID)
}

// TeamID returns the id of the current team, or empty when none is set.
func (g *OverloadGuard) TeamID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.team == nil {
		return ""
	}

	return g.team.ID
}

// evaluateLocked recomputes the state from the selection. Caller holds
// g.mu.
//
// A selection naming a member absent from the team stays Clear: the guard
// only warns about load it can actually see.
func (g *OverloadGuard) evaluateLocked() GuardState {
	g.state = GuardClear

	if g.team != nil && g.memberID != "" {
		if member, ok := g.team.FindMember(g.memberID); ok && member.Overloaded() {
			g.state = GuardWarning
		}
	}

	return g.state
}

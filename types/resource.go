package types

import (
	"errors"
	"fmt"
	"time"
)

// UnassignedMember is the sentinel value the backend uses for tasks that
// have no assigned member. It appears in both AssignedMemberID and
// AssignedMemberName on the wire.
const UnassignedMember = "Unassigned"

// MaxMemberCapacity is the upper bound for a member's task capacity.
const MaxMemberCapacity = 10

// Priority is the task priority level.
type Priority string

// Task priority levels.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Status is the task lifecycle status.
type Status string

// Task lifecycle statuses.
const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Valid reports whether the status is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

// Terminal reports whether the status ends a task's lifecycle.
//
// Only non-terminal tasks count towards a member's CurrentTasks load.
func (s Status) Terminal() bool {
	return s == StatusDone
}

// Member is a person on a team.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Role is free text (e.g. "Frontend Developer").
	Role string `json:"role"`

	// Capacity is the maximum number of non-terminal tasks this member may
	// carry before being considered overloaded. Range 0-10 inclusive.
	Capacity int `json:"capacity"`

	// CurrentTasks is the number of non-terminal tasks currently assigned
	// to this member. Derived server-side; clients read it but never
	// mutate it.
	CurrentTasks int `json:"currentTasks"`
}

// Overloaded reports whether the member is at or above capacity.
func (m Member) Overloaded() bool {
	return m.CurrentTasks >= m.Capacity
}

// Validate checks the member shape as received from the server.
func (m Member) Validate() error {
	if m.ID == "" {
		return errors.New("member id is empty")
	}
	if m.Capacity < 0 || m.Capacity > MaxMemberCapacity {
		return fmt.Errorf("member %s capacity %d out of range 0-%d", m.ID, m.Capacity, MaxMemberCapacity)
	}
	if m.CurrentTasks < 0 {
		return fmt.Errorf("member %s has negative currentTasks %d", m.ID, m.CurrentTasks)
	}

	return nil
}

// Team is a named group of members. The team owns its member list; member
// lifetime ends with team deletion.
type Team struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// FindMember returns the member with the given id, if present.
func (t Team) FindMember(id string) (Member, bool) {
	for _, m := range t.Members {
		if m.ID == id {
			return m, true
		}
	}

	return Member{}, false
}

// Validate checks the team shape as received from the server.
//
// Member ids must be unique within the team.
func (t Team) Validate() error {
	if t.ID == "" {
		return errors.New("team id is empty")
	}
	seen := make(map[string]struct{}, len(t.Members))
	for _, m := range t.Members {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("team %s: %w", t.ID, err)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("team %s has duplicate member id %s", t.ID, m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	return nil
}

// Project belongs to exactly one team, referenced by id.
type Project struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TeamID      string `json:"teamId"`
}

// Validate checks the project shape as received from the server.
func (p Project) Validate() error {
	if p.ID == "" {
		return errors.New("project id is empty")
	}

	return nil
}

// ProjectDraft carries the client-supplied fields of a project write.
type ProjectDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TeamID      string `json:"teamId"`
}

// Task is a unit of work inside a project.
//
// TeamID is a denormalized copy of the owning project's team, kept for
// query efficiency. AssignedMemberName is a denormalized display copy of
// the member's name; both are filled in by the client before sending.
type Task struct {
	ID                 string   `json:"_id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	ProjectID          string   `json:"projectId"`
	TeamID             string   `json:"teamId"`
	AssignedMemberID   string   `json:"assignedMemberId"`
	AssignedMemberName string   `json:"assignedMemberName"`
	Priority           Priority `json:"priority"`
	Status             Status   `json:"status"`
}

// Validate checks the task shape as received from the server.
func (t Task) Validate() error {
	if t.ID == "" {
		return errors.New("task id is empty")
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("task %s has unknown priority %q", t.ID, t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("task %s has unknown status %q", t.ID, t.Status)
	}

	return nil
}

// TaskPayload is the wire payload of a task create or update, including
// the denormalized team and member-name fields.
type TaskPayload struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	ProjectID          string   `json:"projectId"`
	TeamID             string   `json:"teamId"`
	AssignedMemberID   string   `json:"assignedMemberId"`
	AssignedMemberName string   `json:"assignedMemberName"`
	Priority           Priority `json:"priority"`
	Status             Status   `json:"status"`
}

// TaskDraft carries the caller-supplied fields of a task write. The
// assignment workflow denormalizes the remaining TaskPayload fields from
// its current team and member selection.
type TaskDraft struct {
	Title       string
	Description string
	ProjectID   string
	Priority    Priority
	Status      Status
}

// TaskFilter narrows a task list query. Empty fields match everything.
type TaskFilter struct {
	ProjectID string `json:"projectId,omitempty"`
	MemberID  string `json:"memberId,omitempty"`
	Status    string `json:"status,omitempty"`
}

// ActivityLog is one append-only record of a task reassignment.
type ActivityLog struct {
	ID         string    `json:"_id"`
	TaskTitle  string    `json:"taskTitle"`
	FromMember string    `json:"fromMember"`
	ToMember   string    `json:"toMember"`
	Timestamp  time.Time `json:"timestamp"`
}

// Validate checks the log entry shape as received from the server.
func (l ActivityLog) Validate() error {
	if l.ID == "" {
		return errors.New("activity log id is empty")
	}

	return nil
}

// MemberDraft carries the client-supplied fields when adding or updating
// a team member.
type MemberDraft struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Capacity int    `json:"capacity"`
}

// TeamDraft carries the client-supplied fields of a team write.
type TeamDraft struct {
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// DashboardStats is the aggregated dashboard payload.
type DashboardStats struct {
	TotalProjects   int           `json:"totalProjects"`
	TotalTasks      int           `json:"totalTasks"`
	PendingTasks    int           `json:"pendingTasks"`
	InProgressTasks int           `json:"inProgressTasks"`
	DoneTasks       int           `json:"doneTasks"`
	Teams           []Team        `json:"teams"`
	RecentLogs      []ActivityLog `json:"recentLogs"`
}

// Identity is the information extracted from a session token for display.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the account creation payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile is the profile record behind /users/profile.
type UserProfile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks the profile shape as received from the server.
func (u UserProfile) Validate() error {
	if u.ID == "" {
		return errors.New("user profile id is empty")
	}

	return nil
}

// ProfileDraft carries the client-supplied fields of a profile update.
type ProfileDraft struct {
	Name string `json:"name"`
}

// AssignSuggestion is the advisor's response to an auto-assign request.
//
// When Success is false, Message carries the advisor's explanation (for
// example, every member being at full capacity).
type AssignSuggestion struct {
	Success         bool    `json:"success"`
	SuggestedMember *Member `json:"suggestedMember,omitempty"`
	Message         string  `json:"message,omitempty"`
}

package smarttask

import "github.com/nhnasim333/smart-task-manager/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the
// `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root package,
// while still providing a convenient `smarttask.Task`, `smarttask.Logger`,
// etc. for users.
type (
	Team             = types.Team
	Member           = types.Member
	MemberDraft      = types.MemberDraft
	TeamDraft        = types.TeamDraft
	Project          = types.Project
	ProjectDraft     = types.ProjectDraft
	Task             = types.Task
	TaskDraft        = types.TaskDraft
	TaskFilter       = types.TaskFilter
	TaskPayload      = types.TaskPayload
	ActivityLog      = types.ActivityLog
	DashboardStats   = types.DashboardStats
	AssignSuggestion = types.AssignSuggestion
	Identity         = types.Identity
	Credentials      = types.Credentials
	Registration     = types.Registration
	UserProfile      = types.UserProfile
	ProfileDraft     = types.ProfileDraft
	Priority         = types.Priority
	Status           = types.Status
	RequestError     = types.RequestError
)

// Re-export interfaces from the internal types package for convenience.
type (
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
	Storage          = types.Storage
)

// Re-export enum values and sentinels from the internal types package.
const (
	PriorityLow    = types.PriorityLow
	PriorityMedium = types.PriorityMedium
	PriorityHigh   = types.PriorityHigh

	StatusPending    = types.StatusPending
	StatusInProgress = types.StatusInProgress
	StatusDone       = types.StatusDone

	// UnassignedMember is the wire sentinel for tasks without an assignee.
	UnassignedMember = types.UnassignedMember

	// MaxMemberCapacity is the upper bound for a member's task capacity.
	MaxMemberCapacity = types.MaxMemberCapacity
)

// Re-export resource tags for callers inspecting the dependency graph.
type Tag = types.Tag

const (
	TagUsers        = types.TagUsers
	TagTeams        = types.TagTeams
	TagProjects     = types.TagProjects
	TagTasks        = types.TagTasks
	TagActivityLogs = types.TagActivityLogs
	TagDashboard    = types.TagDashboard
)

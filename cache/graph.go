package cache

import "github.com/nhnasim333/smart-task-manager/types"

// Operation identifies one endpoint operation against the backend.
//
// Operations are the vertices of the tag dependency graph: reads provide
// tags, writes invalidate tags. The mapping lives in the provides and
// invalidates tables below and is fixed at compile time.
type Operation int

const (
	// OpLogin exchanges credentials for a signed token.
	OpLogin Operation = iota

	// OpGetUserProfile reads a user profile by email.
	OpGetUserProfile

	// OpUpdateUserProfile updates profile fields.
	OpUpdateUserProfile

	// OpGetDashboardStats reads the aggregated dashboard payload.
	OpGetDashboardStats

	// OpGetActivityLogs reads the reassignment log.
	OpGetActivityLogs

	// OpGetProjects lists all projects.
	OpGetProjects

	// OpGetProject reads a single project.
	OpGetProject

	// OpCreateProject creates a project.
	OpCreateProject

	// OpUpdateProject updates a project.
	OpUpdateProject

	// OpDeleteProject deletes a project and cascades to its tasks.
	OpDeleteProject

	// OpGetTasks lists tasks with optional filters.
	OpGetTasks

	// OpGetTask reads a single task.
	OpGetTask

	// OpCreateTask creates a task.
	OpCreateTask

	// OpUpdateTask updates a task.
	OpUpdateTask

	// OpDeleteTask deletes a task.
	OpDeleteTask

	// OpAutoAssignTask asks the advisor for an assignment suggestion.
	// Read-only; mutates nothing despite using POST.
	OpAutoAssignTask

	// OpReassignTasks triggers a bulk rebalance across a team.
	OpReassignTasks

	// OpGetTeams lists all teams.
	OpGetTeams

	// OpGetTeam reads a single team.
	OpGetTeam

	// OpCreateTeam creates a team.
	OpCreateTeam

	// OpUpdateTeam updates a team.
	OpUpdateTeam

	// OpDeleteTeam deletes a team.
	OpDeleteTeam

	// OpAddTeamMember adds a member to a team.
	OpAddTeamMember

	// OpUpdateTeamMember updates a team member.
	OpUpdateTeamMember

	// OpDeleteTeamMember removes a member from a team.
	OpDeleteTeamMember

	numOperations
)

// String returns the operation's endpoint name.
func (op Operation) String() string {
	if op < 0 || op >= numOperations {
		return "unknown"
	}

	return operationNames[op]
}

var operationNames = [numOperations]string{
	OpLogin:             "login",
	OpGetUserProfile:    "getUserProfile",
	OpUpdateUserProfile: "updateUserProfile",
	OpGetDashboardStats: "getDashboardStats",
	OpGetActivityLogs:   "getActivityLogs",
	OpGetProjects:       "getAllProjects",
	OpGetProject:        "getProjectById",
	OpCreateProject:     "createProject",
	OpUpdateProject:     "updateProject",
	OpDeleteProject:     "deleteProject",
	OpGetTasks:          "getAllTasks",
	OpGetTask:           "getTaskById",
	OpCreateTask:        "createTask",
	OpUpdateTask:        "updateTask",
	OpDeleteTask:        "deleteTask",
	OpAutoAssignTask:    "autoAssignTask",
	OpReassignTasks:     "reassignTasks",
	OpGetTeams:          "getAllTeams",
	OpGetTeam:           "getTeamById",
	OpCreateTeam:        "createTeam",
	OpUpdateTeam:        "updateTeam",
	OpDeleteTeam:        "deleteTeam",
	OpAddTeamMember:     "addMemberToTeam",
	OpUpdateTeamMember:  "updateTeamMember",
	OpDeleteTeamMember:  "deleteTeamMember",
}

// provides maps each read operation to the tags whose changes invalidate
// its cached result. Write operations provide nothing.
var provides = [numOperations]types.TagSet{
	OpGetUserProfile:    types.NewTagSet(types.TagUsers),
	OpGetDashboardStats: types.NewTagSet(types.TagDashboard, types.TagProjects, types.TagTasks, types.TagTeams),
	OpGetActivityLogs:   types.NewTagSet(types.TagActivityLogs),
	OpGetProjects:       types.NewTagSet(types.TagProjects),
	OpGetProject:        types.NewTagSet(types.TagProjects),
	OpGetTasks:          types.NewTagSet(types.TagTasks),
	OpGetTask:           types.NewTagSet(types.TagTasks),
	OpGetTeams:          types.NewTagSet(types.TagTeams),
	OpGetTeam:           types.NewTagSet(types.TagTeams),
}

// invalidates maps each write operation to the tags it affects. Read
// operations and the advisor suggestion invalidate nothing, and a failed
// write never reaches this table.
var invalidates = [numOperations]types.TagSet{
	OpUpdateUserProfile: types.NewTagSet(types.TagUsers),
	OpCreateProject:     types.NewTagSet(types.TagProjects),
	OpUpdateProject:     types.NewTagSet(types.TagProjects),
	OpDeleteProject:     types.NewTagSet(types.TagProjects, types.TagTasks),
	OpCreateTask:        types.NewTagSet(types.TagTasks, types.TagTeams),
	OpUpdateTask:        types.NewTagSet(types.TagTasks, types.TagTeams),
	OpDeleteTask:        types.NewTagSet(types.TagTasks, types.TagTeams),
	OpReassignTasks:     types.NewTagSet(types.TagTasks, types.TagTeams, types.TagActivityLogs),
	OpCreateTeam:        types.NewTagSet(types.TagTeams),
	OpUpdateTeam:        types.NewTagSet(types.TagTeams, types.TagDashboard),
	OpDeleteTeam:        types.NewTagSet(types.TagTeams, types.TagDashboard),
	OpAddTeamMember:     types.NewTagSet(types.TagTeams, types.TagDashboard),
	OpUpdateTeamMember:  types.NewTagSet(types.TagTeams, types.TagDashboard),
	OpDeleteTeamMember:  types.NewTagSet(types.TagTeams, types.TagTasks, types.TagDashboard),
}

// Provides returns the tags the operation's cached result depends on.
func Provides(op Operation) types.TagSet {
	if op < 0 || op >= numOperations {
		return 0
	}

	return provides[op]
}

// Invalidates returns the tags a successful execution of the operation
// makes stale.
func Invalidates(op Operation) types.TagSet {
	if op < 0 || op >= numOperations {
		return 0
	}

	return invalidates[op]
}

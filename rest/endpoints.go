package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nhnasim333/smart-task-manager/types"
)

// Login exchanges credentials for a signed session token.
//
// Parameters:
//   - ctx: Context for the request
//   - creds: Email and password
//
// Returns:
//   - string: Opaque signed token for subsequent requests
//   - error: Auth failure or transport/server error
func (c *Client) Login(ctx context.Context, creds types.Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/jwt", nil, creds, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &types.RequestError{Kind: types.ErrMalformedResponse, Message: "login response carries no token"}
	}

	return resp.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg types.Registration) error {
	return c.do(ctx, http.MethodPost, "/users/register", nil, reg, nil)
}

// UserProfile reads the profile record for the given email.
func (c *Client) UserProfile(ctx context.Context, email string) (*types.UserProfile, error) {
	query := url.Values{"email": {email}}

	var profile types.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/profile", query, nil, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateUserProfile updates profile fields for the given user id.
func (c *Client) UpdateUserProfile(ctx context.Context, id string, draft types.ProfileDraft) (*types.UserProfile, error) {
	var profile types.UserProfile
	if err := c.do(ctx, http.MethodPut, "/users/"+id, nil, draft, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// DashboardStats reads the aggregated dashboard payload.
func (c *Client) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	var stats types.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	if err := validateAll(stats.Teams); err != nil {
		return nil, err
	}
	if err := validateAll(stats.RecentLogs); err != nil {
		return nil, err
	}

	return &stats, nil
}

// ActivityLogs reads the reassignment log, newest first.
//
// Parameters:
//   - ctx: Context for the request
//   - teamID: Restrict to one team; empty means all teams
//   - limit: Maximum entries to return; non-positive falls back to the
//     server default of 10
func (c *Client) ActivityLogs(ctx context.Context, teamID string, limit int) ([]types.ActivityLog, error) {
	if limit <= 0 {
		limit = 10
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if teamID != "" {
		query.Set("teamId", teamID)
	}

	var logs []types.ActivityLog
	if err := c.do(ctx, http.MethodGet, "/activity-logs", query, nil, &logs); err != nil {
		return nil, err
	}
	if err := validateAll(logs); err != nil {
		return nil, err
	}

	return logs, nil
}

// Projects lists all projects.
func (c *Client) Projects(ctx context.Context) ([]types.Project, error) {
	var projects []types.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	if err := validateAll(projects); err != nil {
		return nil, err
	}

	return projects, nil
}

// Project reads a single project.
func (c *Client) Project(ctx context.Context, id string) (*types.Project, error) {
	var project types.Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+id, nil, nil, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, draft types.ProjectDraft) (*types.Project, error) {
	var project types.Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, draft, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

// UpdateProject updates an existing project.
func (c *Client) UpdateProject(ctx context.Context, id string, draft types.ProjectDraft) (*types.Project, error) {
	var project types.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+id, nil, draft, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

// DeleteProject deletes a project. The server cascades the delete to the
// project's tasks.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil, nil)
}

// Tasks lists tasks matching the filter. Empty filter fields match
// everything.
func (c *Client) Tasks(ctx context.Context, filter types.TaskFilter) ([]types.Task, error) {
	query := url.Values{}
	if filter.ProjectID != "" {
		query.Set("projectId", filter.ProjectID)
	}
	if filter.MemberID != "" {
		query.Set("memberId", filter.MemberID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var tasks []types.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", query, nil, &tasks); err != nil {
		return nil, err
	}
	if err := validateAll(tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Task reads a single task.
func (c *Client) Task(ctx context.Context, id string) (*types.Task, error) {
	var task types.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, nil, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// CreateTask creates a task from a fully denormalized payload.
func (c *Client) CreateTask(ctx context.Context, payload types.TaskPayload) (*types.Task, error) {
	var task types.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, payload, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask replaces a task's fields.
func (c *Client) UpdateTask(ctx context.Context, id string, payload types.TaskPayload) (*types.Task, error) {
	var task types.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, nil, payload, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil, nil)
}

// AutoAssign asks the assignment advisor for a suggested member on the
// given team. A declined suggestion is not an error: Success is false and
// Message explains why.
func (c *Client) AutoAssign(ctx context.Context, teamID string) (*types.AssignSuggestion, error) {
	body := map[string]string{"teamId": teamID}

	var suggestion types.AssignSuggestion
	if err := c.do(ctx, http.MethodPost, "/tasks/auto-assign", nil, body, &suggestion); err != nil {
		return nil, err
	}

	return &suggestion, nil
}

// Reassign triggers a bulk rebalance of the team's tasks.
//
// Returns:
//   - string: The server's summary message, e.g. "Reassigned 3 task(s)"
//   - error: Transport or server error
func (c *Client) Reassign(ctx context.Context, teamID string) (string, error) {
	body := map[string]string{"teamId": teamID}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/tasks/reassign", nil, body, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// Teams lists all teams.
func (c *Client) Teams(ctx context.Context) ([]types.Team, error) {
	var teams []types.Team
	if err := c.do(ctx, http.MethodGet, "/teams", nil, nil, &teams); err != nil {
		return nil, err
	}
	if err := validateAll(teams); err != nil {
		return nil, err
	}

	return teams, nil
}

// Team reads a single team.
func (c *Client) Team(ctx context.Context, id string) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, http.MethodGet, "/teams/"+id, nil, nil, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, draft types.TeamDraft) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, http.MethodPost, "/teams", nil, draft, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

// UpdateTeam updates a team's fields.
func (c *Client) UpdateTeam(ctx context.Context, id string, draft types.TeamDraft) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, http.MethodPut, "/teams/"+id, nil, draft, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

// DeleteTeam deletes a team and, with it, its members.
func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/teams/"+id, nil, nil, nil)
}

// AddTeamMember adds a member to a team.
func (c *Client) AddTeamMember(ctx context.Context, teamID string, draft types.MemberDraft) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, http.MethodPatch, "/teams/"+teamID+"/members", nil, draft, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

// UpdateTeamMember updates a member's fields.
func (c *Client) UpdateTeamMember(ctx context.Context, teamID, memberID string, draft types.MemberDraft) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, http.MethodPatch, "/teams/"+teamID+"/members/"+memberID, nil, draft, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

// DeleteTeamMember removes a member from a team. The server unassigns the
// member's open tasks.
func (c *Client) DeleteTeamMember(ctx context.Context, teamID, memberID string) error {
	return c.do(ctx, http.MethodDelete, "/teams/"+teamID+"/members/"+memberID, nil, nil, nil)
}

package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nhnasim333/smart-task-manager/types"
)

// Backend is an in-process stub of the task manager backend for tests.
//
// It speaks the same REST surface as the real server: JWT login, profile
// reads, teams with derived member load, projects, tasks, the assignment
// advisor, bulk reassignment with activity logs, and dashboard stats.
// State lives in memory; every write recomputes each member's
// currentTasks from the non-terminal tasks assigned to them, so capacity
// checks observe the same numbers a fresh read would.
//
// Error responses use the production {"message": "..."} shape.
type Backend struct {
	t      *testing.T
	srv    *httptest.Server
	secret []byte

	// RequireAuth rejects requests without a valid bearer token with 401.
	// Login and registration stay open. Off by default so cache and
	// workflow tests do not need a session.
	RequireAuth bool

	mu       sync.Mutex
	users    map[string]*userRecord
	teams    map[string]*types.Team
	projects map[string]*types.Project
	tasks    map[string]*types.Task
	logs     []types.ActivityLog
	requests map[string]int
}

type userRecord struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// StartBackend starts a stub backend on a random local port.
//
// The server is shut down automatically via t.Cleanup. A default user
// (alice@example.com / secret) is pre-seeded so login flows work out of
// the box.
//
// Parameters:
//   - t: Testing context for cleanup and failure reporting
//
// Returns:
//   - *Backend: Running backend; point clients at URL()
func StartBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		t:        t,
		secret:   []byte("stub-backend-secret"),
		users:    make(map[string]*userRecord),
		teams:    make(map[string]*types.Team),
		projects: make(map[string]*types.Project),
		tasks:    make(map[string]*types.Task),
		requests: make(map[string]int),
	}
	b.SeedUser("Alice", "alice@example.com", "secret")

	r := chi.NewRouter()
	r.Use(b.countRequests)
	r.Use(b.checkAuth)

	r.Post("/jwt", b.handleLogin)
	r.Post("/users/register", b.handleRegister)
	r.Get("/users/profile", b.handleUserProfile)
	r.Put("/users/{id}", b.handleUpdateProfile)

	r.Get("/dashboard/stats", b.handleDashboardStats)
	r.Get("/activity-logs", b.handleActivityLogs)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", b.handleListProjects)
		r.Post("/", b.handleCreateProject)
		r.Get("/{id}", b.handleGetProject)
		r.Put("/{id}", b.handleUpdateProject)
		r.Delete("/{id}", b.handleDeleteProject)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", b.handleListTasks)
		r.Post("/", b.handleCreateTask)
		r.Post("/auto-assign", b.handleAutoAssign)
		r.Post("/reassign", b.handleReassign)
		r.Get("/{id}", b.handleGetTask)
		r.Put("/{id}", b.handleUpdateTask)
		r.Delete("/{id}", b.handleDeleteTask)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", b.handleListTeams)
		r.Post("/", b.handleCreateTeam)
		r.Get("/{id}", b.handleGetTeam)
		r.Put("/{id}", b.handleUpdateTeam)
		r.Delete("/{id}", b.handleDeleteTeam)
		r.Patch("/{id}/members", b.handleAddMember)
		r.Patch("/{id}/members/{memberId}", b.handleUpdateMember)
		r.Delete("/{id}/members/{memberId}", b.handleDeleteMember)
	})

	b.srv = httptest.NewServer(r)
	t.Cleanup(b.srv.Close)

	return b
}

// URL returns the backend's base URL.
func (b *Backend) URL() string {
	return b.srv.URL
}

// Requests returns how many requests matched the method and chi route
// pattern, e.g. Requests("POST", "/tasks").
func (b *Backend) Requests(method, pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.requests[method+" "+pattern]
}

// SeedUser registers a user account.
func (b *Backend) SeedUser(name, email, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.users[email] = &userRecord{ID: id, Name: name, Email: email, Password: password}

	return id
}

// SeedTeam installs a team. Member currentTasks are recomputed from
// seeded tasks, not taken from the argument.
func (b *Backend) SeedTeam(team types.Team) {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := team
	copied.Members = append([]types.Member(nil), team.Members...)
	b.teams[team.ID] = &copied
	b.recomputeLocked()
}

// SeedProject installs a project.
func (b *Backend) SeedProject(project types.Project) {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := project
	b.projects[project.ID] = &copied
	b.recomputeLocked()
}

// SeedTask installs a task and recomputes member load.
func (b *Backend) SeedTask(task types.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := task
	b.tasks[task.ID] = &copied
	b.recomputeLocked()
}

// Task returns a stored task by id for assertions.
func (b *Backend) Task(id string) (types.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[id]
	if !ok {
		return types.Task{}, false
	}

	return *task, true
}

// Team returns a stored team by id for assertions, with fresh load
// numbers.
func (b *Backend) Team(id string) (types.Team, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[id]
	if !ok {
		return types.Team{}, false
	}

	return *team, true
}

// recomputeLocked rebuilds every member's currentTasks from the
// non-terminal tasks assigned to them. Caller holds b.mu.
func (b *Backend) recomputeLocked() {
	counts := make(map[string]int)
	for _, task := range b.tasks {
		if !task.Status.Terminal() {
			counts[task.AssignedMemberID]++
		}
	}
	for _, team := range b.teams {
		for i := range team.Members {
			team.Members[i].CurrentTasks = counts[team.Members[i].ID]
		}
	}
}

func (b *Backend) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if len(pattern) > 1 {
			pattern = strings.TrimSuffix(pattern, "/")
		}
		b.mu.Lock()
		b.requests[r.Method+" "+pattern]++
		b.mu.Unlock()
	})
}

func (b *Backend) checkAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !b.RequireAuth || r.URL.Path == "/jwt" || r.URL.Path == "/users/register" {
			next.ServeHTTP(w, r)
			return
		}

		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		_, err := jwt.Parse(raw, func(_ *jwt.Token) (any, error) {
			return b.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	return true
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds types.Credentials
	if !decode(w, r, &creds) {
		return
	}

	b.mu.Lock()
	user, ok := b.users[creds.Email]
	b.mu.Unlock()
	if !ok || user.Password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(b.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg types.Registration
	if !decode(w, r, &reg) {
		return
	}
	if reg.Email == "" || reg.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[reg.Email]; exists {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	b.users[reg.Email] = &userRecord{
		ID:       uuid.NewString(),
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered"})
}

func (b *Backend) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	b.mu.Lock()
	user, ok := b.users[email]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, types.UserProfile{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (b *Backend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var draft types.ProfileDraft
	if !decode(w, r, &draft) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, user := range b.users {
		if user.ID == id {
			user.Name = draft.Name
			writeJSON(w, http.StatusOK, types.UserProfile{ID: user.ID, Name: user.Name, Email: user.Email})
			return
		}
	}

	writeError(w, http.StatusNotFound, "User not found")
}

func (b *Backend) handleDashboardStats(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := types.DashboardStats{
		TotalProjects: len(b.projects),
		TotalTasks:    len(b.tasks),
	}
	for _, task := range b.tasks {
		switch task.Status {
		case types.StatusPending:
			stats.PendingTasks++
		case types.StatusInProgress:
			stats.InProgressTasks++
		case types.StatusDone:
			stats.DoneTasks++
		}
	}
	for _, team := range b.teams {
		stats.Teams = append(stats.Teams, *team)
	}
	sort.Slice(stats.Teams, func(i, j int) bool { return stats.Teams[i].ID < stats.Teams[j].ID })

	logs := b.logs
	if len(logs) > 10 {
		logs = logs[len(logs)-10:]
	}
	stats.RecentLogs = append([]types.ActivityLog(nil), logs...)

	writeJSON(w, http.StatusOK, stats)
}

func (b *Backend) handleActivityLogs(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Newest first; teamID narrows by the team prefix baked into the log id.
	out := make([]types.ActivityLog, 0, limit)
	for i := len(b.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if teamID == "" || strings.HasPrefix(b.logs[i].ID, teamID+"/") {
			out = append(out, b.logs[i])
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleListProjects(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.Project, 0, len(b.projects))
	for _, project := range b.projects {
		out = append(out, *project)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var draft types.ProjectDraft
	if !decode(w, r, &draft) {
		return
	}
	if draft.Name == "" {
		writeError(w, http.StatusBadRequest, "Project name is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	project := types.Project{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		TeamID:      draft.TeamID,
	}
	b.projects[project.ID] = &project

	writeJSON(w, http.StatusCreated, project)
}

func (b *Backend) handleGetProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	project, ok := b.projects[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	writeJSON(w, http.StatusOK, *project)
}

func (b *Backend) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var draft types.ProjectDraft
	if !decode(w, r, &draft) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	project, ok := b.projects[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	project.Name = draft.Name
	project.Description = draft.Description
	project.TeamID = draft.TeamID

	writeJSON(w, http.StatusOK, *project)
}

func (b *Backend) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.projects[id]; !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	delete(b.projects, id)

	// The delete cascades to the project's tasks.
	for taskID, task := range b.tasks {
		if task.ProjectID == id {
			delete(b.tasks, taskID)
		}
	}
	b.recomputeLocked()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}

func (b *Backend) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.Task, 0, len(b.tasks))
	for _, task := range b.tasks {
		if v := q.Get("projectId"); v != "" && task.ProjectID != v {
			continue
		}
		if v := q.Get("memberId"); v != "" && task.AssignedMemberID != v {
			continue
		}
		if v := q.Get("status"); v != "" && string(task.Status) != v {
			continue
		}
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var payload types.TaskPayload
	if !decode(w, r, &payload) {
		return
	}
	if payload.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	task := types.Task{
		ID:                 uuid.NewString(),
		Title:              payload.Title,
		Description:        payload.Description,
		ProjectID:          payload.ProjectID,
		TeamID:             payload.TeamID,
		AssignedMemberID:   payload.AssignedMemberID,
		AssignedMemberName: payload.AssignedMemberName,
		Priority:           payload.Priority,
		Status:             payload.Status,
	}
	b.tasks[task.ID] = &task
	b.recomputeLocked()

	writeJSON(w, http.StatusCreated, task)
}

func (b *Backend) handleGetTask(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	writeJSON(w, http.StatusOK, *task)
}

func (b *Backend) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var payload types.TaskPayload
	if !decode(w, r, &payload) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	task.Title = payload.Title
	task.Description = payload.Description
	task.ProjectID = payload.ProjectID
	task.TeamID = payload.TeamID
	task.AssignedMemberID = payload.AssignedMemberID
	task.AssignedMemberName = payload.AssignedMemberName
	task.Priority = payload.Priority
	task.Status = payload.Status
	b.recomputeLocked()

	writeJSON(w, http.StatusOK, *task)
}

func (b *Backend) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.tasks[id]; !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	delete(b.tasks, id)
	b.recomputeLocked()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func (b *Backend) handleAutoAssign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TeamID string `json:"teamId"`
	}
	if !decode(w, r, &body) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[body.TeamID]
	if !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}

	// Least-loaded member with headroom wins; ties break by declaration
	// order.
	var best *types.Member
	for i := range team.Members {
		m := &team.Members[i]
		if m.CurrentTasks >= m.Capacity {
			continue
		}
		if best == nil || m.CurrentTasks < best.CurrentTasks {
			best = m
		}
	}
	if best == nil {
		writeJSON(w, http.StatusOK, types.AssignSuggestion{
			Success: false,
			Message: "All members are at full capacity",
		})
		return
	}

	writeJSON(w, http.StatusOK, types.AssignSuggestion{
		Success:         true,
		SuggestedMember: best,
	})
}

func (b *Backend) handleReassign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TeamID string `json:"teamId"`
	}
	if !decode(w, r, &body) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[body.TeamID]
	if !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	if len(team.Members) == 0 {
		writeError(w, http.StatusBadRequest, "Team has no members")
		return
	}

	// Round-robin the team's open tasks across its members, logging each
	// move.
	open := make([]*types.Task, 0, len(b.tasks))
	for _, task := range b.tasks {
		if task.TeamID == team.ID && !task.Status.Terminal() {
			open = append(open, task)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].ID < open[j].ID })

	moved := 0
	for i, task := range open {
		target := team.Members[i%len(team.Members)]
		if task.AssignedMemberID == target.ID {
			continue
		}

		from := task.AssignedMemberName
		task.AssignedMemberID = target.ID
		task.AssignedMemberName = target.Name
		moved++

		b.logs = append(b.logs, types.ActivityLog{
			ID:         team.ID + "/" + uuid.NewString(),
			TaskTitle:  task.Title,
			FromMember: from,
			ToMember:   target.Name,
			Timestamp:  time.Now().UTC(),
		})
	}
	b.recomputeLocked()

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Reassigned " + strconv.Itoa(moved) + " task(s)",
	})
}

func (b *Backend) handleListTeams(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.Team, 0, len(b.teams))
	for _, team := range b.teams {
		out = append(out, *team)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var draft types.TeamDraft
	if !decode(w, r, &draft) {
		return
	}
	if draft.Name == "" {
		writeError(w, http.StatusBadRequest, "Team name is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	team := types.Team{
		ID:      uuid.NewString(),
		Name:    draft.Name,
		Members: append([]types.Member(nil), draft.Members...),
	}
	for i := range team.Members {
		if team.Members[i].ID == "" {
			team.Members[i].ID = uuid.NewString()
		}
	}
	b.teams[team.ID] = &team
	b.recomputeLocked()

	writeJSON(w, http.StatusCreated, team)
}

func (b *Backend) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}

	writeJSON(w, http.StatusOK, *team)
}

func (b *Backend) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var draft types.TeamDraft
	if !decode(w, r, &draft) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	team.Name = draft.Name

	writeJSON(w, http.StatusOK, *team)
}

func (b *Backend) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.teams[id]; !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	delete(b.teams, id)

	// Members die with the team; their open tasks become unassigned.
	for _, task := range b.tasks {
		if task.TeamID == id && !task.Status.Terminal() {
			task.AssignedMemberID = types.UnassignedMember
			task.AssignedMemberName = types.UnassignedMember
		}
	}
	b.recomputeLocked()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}

func (b *Backend) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var draft types.MemberDraft
	if !decode(w, r, &draft) {
		return
	}
	if draft.Capacity < 0 || draft.Capacity > types.MaxMemberCapacity {
		writeError(w, http.StatusBadRequest, "Capacity must be between 0 and 10")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	team.Members = append(team.Members, types.Member{
		ID:       uuid.NewString(),
		Name:     draft.Name,
		Role:     draft.Role,
		Capacity: draft.Capacity,
	})

	writeJSON(w, http.StatusOK, *team)
}

func (b *Backend) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var draft types.MemberDraft
	if !decode(w, r, &draft) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}

	memberID := chi.URLParam(r, "memberId")
	for i := range team.Members {
		if team.Members[i].ID == memberID {
			team.Members[i].Name = draft.Name
			team.Members[i].Role = draft.Role
			team.Members[i].Capacity = draft.Capacity
			writeJSON(w, http.StatusOK, *team)
			return
		}
	}

	writeError(w, http.StatusNotFound, "Member not found")
}

func (b *Backend) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	team, ok := b.teams[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}

	memberID := chi.URLParam(r, "memberId")
	for i := range team.Members {
		if team.Members[i].ID == memberID {
			team.Members = append(team.Members[:i], team.Members[i+1:]...)

			// Open tasks held by the removed member become unassigned.
			for _, task := range b.tasks {
				if task.AssignedMemberID == memberID && !task.Status.Terminal() {
					task.AssignedMemberID = types.UnassignedMember
					task.AssignedMemberName = types.UnassignedMember
				}
			}
			b.recomputeLocked()

			writeJSON(w, http.StatusOK, *team)
			return
		}
	}

	writeError(w, http.StatusNotFound, "Member not found")
}

package smarttask

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/nhnasim333/smart-task-manager/cache"
	"github.com/nhnasim333/smart-task-manager/internal/logging"
	"github.com/nhnasim333/smart-task-manager/internal/metrics"
	"github.com/nhnasim333/smart-task-manager/rest"
	"github.com/nhnasim333/smart-task-manager/session"
	"github.com/nhnasim333/smart-task-manager/types"
	"github.com/nhnasim333/smart-task-manager/workflow"
)

// Client is the composition root: the REST client, the tag-invalidating
// query cache, the persisted session, and the assignment workflow wired
// together.
//
// Thread Safety: all methods are safe for concurrent use.
//
// Lifecycle:
//   - Create with NewClient()
//   - Start() restores a persisted session before any request runs
//   - Subscribe/Mutate drive cached reads and invalidating writes
//   - Stop() closes the query cache; in-flight fetches are discarded
type Client struct {
	cfg       Config
	logger    types.Logger
	collector types.MetricsCollector

	api      *rest.Client
	store    *cache.Store
	session  *session.Manager
	workflow *workflow.Workflow

	started atomic.Bool
}

// NewClient creates a client from the configuration.
//
// Parameters:
//   - cfg: Configuration; missing values are filled with defaults before
//     validation
//   - opts: Optional dependencies (logger, metrics, HTTP client, session
//     storage)
//
// Returns:
//   - *Client: Initialized client, not yet started
//   - error: ErrInvalidConfig for nil or invalid configuration
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &clientOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = logging.NewNop()
	}
	if options.collector == nil {
		options.collector = metrics.NewNop()
	}
	if options.storage == nil {
		options.storage = session.NewMemoryStore()
	}

	cfg.ValidateWithWarnings(options.logger)

	sess, err := session.NewManager(options.storage, cfg.SessionKey, options.logger)
	if err != nil {
		return nil, err
	}

	httpc := options.httpc
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.RequestTimeout}
	}

	api := rest.NewClient(cfg.BaseURL,
		rest.WithHTTPClient(httpc),
		rest.WithTokenFunc(sess.Token),
		rest.WithLogger(options.logger),
	)

	store := cache.NewStore(cfg.EvictionGrace, options.logger, options.collector)

	wf, err := workflow.New(store, api, options.logger, options.collector)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Client{
		cfg:       *cfg,
		logger:    options.logger,
		collector: options.collector,
		api:       api,
		store:     store,
		session:   sess,
		workflow:  wf,
	}, nil
}

// Start brings the client up, restoring any persisted session so the
// first request already carries the bearer token.
//
// A corrupt persisted session is dropped with a warning rather than
// failing startup.
//
// Returns:
//   - error: ErrAlreadyStarted when called twice
func (c *Client) Start(_ context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	restored, err := c.session.Rehydrate()
	if err != nil {
		c.logger.Warn("persisted session unusable, starting logged out", "error", err)
	}
	c.logger.Info("client started", "baseUrl", c.cfg.BaseURL, "sessionRestored", restored)

	return nil
}

// Stop shuts the client down, closing the query cache.
//
// Returns:
//   - error: ErrNotStarted when the client is not running
func (c *Client) Stop(_ context.Context) error {
	if !c.started.CompareAndSwap(true, false) {
		return ErrNotStarted
	}

	err := c.store.Close()
	c.logger.Info("client stopped")

	return err
}

// Login exchanges credentials for a session token and installs the
// session.
//
// Returns:
//   - Identity: Display identity extracted from the token
//   - error: ErrAuth for rejected credentials, transport/server errors
func (c *Client) Login(ctx context.Context, creds Credentials) (Identity, error) {
	token, err := c.api.Login(ctx, creds)
	if err != nil {
		return Identity{}, err
	}

	return c.session.Login(token)
}

// Logout clears the session, in memory and in storage. Cached reads stay
// usable for non-authenticated endpoints; a subsequent Login replaces the
// token for everything else.
func (c *Client) Logout() error {
	return c.session.Logout()
}

// Register creates a new account. The caller still logs in afterwards.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.api.Register(ctx, reg)
}

// Identity returns the identity of the logged-in user and whether a
// session is active.
func (c *Client) Identity() (Identity, bool) {
	return c.session.Identity()
}

// Workflow returns the capacity-aware assignment workflow.
func (c *Client) Workflow() *workflow.Workflow {
	return c.workflow
}

// Store returns the underlying query cache store.
func (c *Client) Store() *cache.Store {
	return c.store
}

// REST returns the underlying typed REST client for direct, uncached
// calls.
func (c *Client) REST() *rest.Client {
	return c.api
}

// Session returns the session manager.
func (c *Client) Session() *session.Manager {
	return c.session
}

// Subscribe registers a live observer for a cached read. Build the query
// with one of the *Query constructors.
//
// Returns:
//   - *cache.Handle: Live subscription handle; release with Unsubscribe
//   - error: ErrNotStarted before Start, or the store's subscribe error
func (c *Client) Subscribe(ctx context.Context, q cache.Query) (*cache.Handle, error) {
	if !c.started.Load() {
		return nil, ErrNotStarted
	}

	return c.store.Subscribe(ctx, q)
}

// Unsubscribe releases a subscription handle.
func (c *Client) Unsubscribe(h *cache.Handle) {
	c.store.Unsubscribe(h)
}

// TasksQuery is the cached read behind the task list, narrowed by the
// filter.
func (c *Client) TasksQuery(filter TaskFilter) cache.Query {
	return cache.Query{
		Op:   cache.OpGetTasks,
		Args: filter,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.Tasks(ctx, filter)
		},
	}
}

// TaskQuery is the cached read for a single task.
func (c *Client) TaskQuery(id string) cache.Query {
	return cache.Query{
		Op:   cache.OpGetTask,
		Args: id,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.Task(ctx, id)
		},
	}
}

// ProjectsQuery is the cached read behind the project list.
func (c *Client) ProjectsQuery() cache.Query {
	return cache.Query{
		Op: cache.OpGetProjects,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.Projects(ctx)
		},
	}
}

// ProjectQuery is the cached read for a single project.
func (c *Client) ProjectQuery(id string) cache.Query {
	return cache.Query{
		Op:   cache.OpGetProject,
		Args: id,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.Project(ctx, id)
		},
	}
}

// TeamsQuery is the cached read behind the team list.
func (c *Client) TeamsQuery() cache.Query {
	return cache.Query{
		Op: cache.OpGetTeams,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.Teams(ctx)
		},
	}
}

// TeamQuery is the cached read for a single team, including its members'
// live load numbers.
func (c *Client) TeamQuery(id string) cache.Query {
	return cache.Query{
		Op:   cache.OpGetTeam,
		Args: id,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.Team(ctx, id)
		},
	}
}

// DashboardStatsQuery is the cached read behind the dashboard. It
// provides the Dashboard, Projects, Tasks, and Teams tags, so any write
// touching those refetches it.
func (c *Client) DashboardStatsQuery() cache.Query {
	return cache.Query{
		Op: cache.OpGetDashboardStats,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.DashboardStats(ctx)
		},
	}
}

// ActivityLogsQuery is the cached read behind the reassignment log. A
// non-positive limit falls back to Config.ActivityLogLimit.
func (c *Client) ActivityLogsQuery(teamID string, limit int) cache.Query {
	if limit <= 0 {
		limit = c.cfg.ActivityLogLimit
	}

	return cache.Query{
		Op:   cache.OpGetActivityLogs,
		Args: map[string]any{"teamId": teamID, "limit": limit},
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.ActivityLogs(ctx, teamID, limit)
		},
	}
}

// UserProfileQuery is the cached read for a user profile by email.
func (c *Client) UserProfileQuery(email string) cache.Query {
	return cache.Query{
		Op:   cache.OpGetUserProfile,
		Args: email,
		Fetch: func(ctx context.Context) (any, error) {
			return c.api.UserProfile(ctx, email)
		},
	}
}

// CreateProject creates a project through the cache, invalidating the
// Projects tag on success.
func (c *Client) CreateProject(ctx context.Context, draft ProjectDraft) (*Project, error) {
	value, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpCreateProject,
		Args: draft,
		Do: func(ctx context.Context) (any, error) {
			return c.api.CreateProject(ctx, draft)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*Project), nil
}

// UpdateProject updates a project through the cache.
func (c *Client) UpdateProject(ctx context.Context, id string, draft ProjectDraft) (*Project, error) {
	value, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpUpdateProject,
		Args: draft,
		Do: func(ctx context.Context) (any, error) {
			return c.api.UpdateProject(ctx, id, draft)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*Project), nil
}

// DeleteProject deletes a project through the cache. The server cascades
// to the project's tasks, so both Projects and Tasks invalidate.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpDeleteProject,
		Args: id,
		Do: func(ctx context.Context) (any, error) {
			return nil, c.api.DeleteProject(ctx, id)
		},
	})

	return err
}

// CreateTeam creates a team through the cache.
func (c *Client) CreateTeam(ctx context.Context, draft TeamDraft) (*Team, error) {
	value, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpCreateTeam,
		Args: draft,
		Do: func(ctx context.Context) (any, error) {
			return c.api.CreateTeam(ctx, draft)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*Team), nil
}

// UpdateTeam updates a team through the cache.
func (c *Client) UpdateTeam(ctx context.Context, id string, draft TeamDraft) (*Team, error) {
	value, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpUpdateTeam,
		Args: draft,
		Do: func(ctx context.Context) (any, error) {
			return c.api.UpdateTeam(ctx, id, draft)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*Team), nil
}

// DeleteTeam deletes a team through the cache. Members live and die with
// their team.
func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	_, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpDeleteTeam,
		Args: id,
		Do: func(ctx context.Context) (any, error) {
			return nil, c.api.DeleteTeam(ctx, id)
		},
	})

	return err
}

// AddTeamMember adds a member to a team through the cache.
func (c *Client) AddTeamMember(ctx context.Context, teamID string, draft MemberDraft) (*Team, error) {
	value, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpAddTeamMember,
		Args: teamID,
		Do: func(ctx context.Context) (any, error) {
			return c.api.AddTeamMember(ctx, teamID, draft)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*Team), nil
}

// UpdateTeamMember updates a member through the cache.
func (c *Client) UpdateTeamMember(ctx context.Context, teamID, memberID string, draft MemberDraft) (*Team, error) {
	value, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpUpdateTeamMember,
		Args: teamID + "/" + memberID,
		Do: func(ctx context.Context) (any, error) {
			return c.api.UpdateTeamMember(ctx, teamID, memberID, draft)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*Team), nil
}

// DeleteTeamMember removes a member through the cache. The server
// unassigns the member's open tasks, so Tasks invalidates along with
// Teams and Dashboard.
func (c *Client) DeleteTeamMember(ctx context.Context, teamID, memberID string) error {
	_, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpDeleteTeamMember,
		Args: teamID + "/" + memberID,
		Do: func(ctx context.Context) (any, error) {
			return nil, c.api.DeleteTeamMember(ctx, teamID, memberID)
		},
	})

	return err
}

// UpdateUserProfile updates the user's profile through the cache.
func (c *Client) UpdateUserProfile(ctx context.Context, id string, draft ProfileDraft) (*UserProfile, error) {
	value, err := c.store.Mutate(ctx, cache.Mutation{
		Op:   cache.OpUpdateUserProfile,
		Args: id,
		Do: func(ctx context.Context) (any, error) {
			return c.api.UpdateUserProfile(ctx, id, draft)
		},
	})
	if err != nil {
		return nil, err
	}

	return value.(*UserProfile), nil
}

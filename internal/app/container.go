// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/infra/config"
	"github.com/runoshun/jiractl/internal/infra/executor"
	"github.com/runoshun/jiractl/internal/infra/git"
	"github.com/runoshun/jiractl/internal/infra/jira"
	"github.com/runoshun/jiractl/internal/infra/jsonstore"
	"github.com/runoshun/jiractl/internal/infra/logging"
	"github.com/runoshun/jiractl/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	RepoRoot  string // Root of the enclosing git repository ("" outside one)
	CachePath string // Path to the summary cache file
	LogDir    string // Directory of the operation logs
}

// newConfig resolves paths from the XDG environment.
func newConfig(repoRoot string) Config {
	return Config{
		RepoRoot:  repoRoot,
		CachePath: domain.CachePath(xdgDir("XDG_CACHE_HOME", ".cache")),
		LogDir:    logging.DefaultLogDir(),
	}
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tracker       domain.IssueTracker // nil until Jira is configured
	Cache         domain.SummaryCache
	Branches      domain.BranchReader // nil outside a git repository
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Executor      domain.CommandExecutor
	OpLog         domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config
	// trackerErr explains why Tracker is nil.
	trackerErr error

	// Configuration
	Config Config
}

// New creates a new Container for the working directory dir.
// A missing git repository or Jira configuration is not an error here;
// commands that need them report it through RequireTracker and CurrentIssue.
func New(dir string) (*Container, error) {
	repoRoot := ""
	var branches domain.BranchReader
	gitClient, err := git.NewClient(dir)
	switch {
	case err == nil:
		repoRoot = gitClient.RepoRoot()
		branches = gitClient
	case errors.Is(err, domain.ErrNotGitRepository):
	default:
		return nil, err
	}

	cfg := newConfig(repoRoot)

	configLoader := config.NewLoader(repoRoot)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))
	for _, w := range appConfig.Warnings {
		logger.Warn("config", "warning", w)
	}

	clock := domain.RealClock{}
	c := &Container{
		Cache:         jsonstore.New(cfg.CachePath, clock),
		Branches:      branches,
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(repoRoot),
		Executor:      executor.NewClient(),
		OpLog:         logging.New(cfg.LogDir, logging.ParseLevel(appConfig.Log.Level)),
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
	}

	client, err := jira.NewClient(jira.ConfigFrom(appConfig.Jira))
	if err != nil {
		c.trackerErr = err
	} else {
		c.Tracker = client
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, tracker domain.IssueTracker, cache domain.SummaryCache, clock domain.Clock, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Container{
		Tracker:   tracker,
		Cache:     cache,
		Clock:     clock,
		OpLog:     domain.NopLogger{},
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
	if tracker == nil {
		c.trackerErr = domain.ErrNotConfigured
	}
	return c
}

// RequireTracker returns an error when no Jira connection is configured.
func (c *Container) RequireTracker() error {
	if c.Tracker != nil {
		return nil
	}
	if c.trackerErr != nil {
		return c.trackerErr
	}
	return domain.ErrNotConfigured
}

// BrowseURL returns the web URL of an issue.
func (c *Container) BrowseURL(key domain.IssueKey) string {
	return domain.BrowseURL(c.AppConfig.Jira.URL, key)
}

// Close releases log files.
func (c *Container) Close() error {
	if closer, ok := c.OpLog.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// UseCase factory methods

// browserCommand builds the command that opens url, honoring $BROWSER.
func browserCommand(url string) *domain.ExecCommand {
	return domain.BrowserCommand(runtime.GOOS, os.Getenv("BROWSER"), url)
}

// ListIssuesUseCase returns a new ListIssues use case.
func (c *Container) ListIssuesUseCase() *usecase.ListIssues {
	return usecase.NewListIssues(c.Tracker, c.Cache, c.OpLog, c.AppConfig.List)
}

// ShowIssueUseCase returns a new ShowIssue use case.
func (c *Container) ShowIssueUseCase() *usecase.ShowIssue {
	return usecase.NewShowIssue(c.Tracker, c.Cache, c.OpLog)
}

// UpdateIssueUseCase returns a new UpdateIssue use case.
func (c *Container) UpdateIssueUseCase() *usecase.UpdateIssue {
	return usecase.NewUpdateIssue(c.Tracker, c.Cache, c.OpLog)
}

// ListTransitionsUseCase returns a new ListTransitions use case.
func (c *Container) ListTransitionsUseCase() *usecase.ListTransitions {
	return usecase.NewListTransitions(c.Tracker)
}

// ListResolutionsUseCase returns a new ListResolutions use case.
func (c *Container) ListResolutionsUseCase() *usecase.ListResolutions {
	return usecase.NewListResolutions(c.Tracker)
}

// ListPrioritiesUseCase returns a new ListPriorities use case.
func (c *Container) ListPrioritiesUseCase() *usecase.ListPriorities {
	return usecase.NewListPriorities(c.Tracker)
}

// FindUsersUseCase returns a new FindUsers use case.
func (c *Container) FindUsersUseCase() *usecase.FindUsers {
	return usecase.NewFindUsers(c.Tracker)
}

// TransitionIssueUseCase returns a new TransitionIssue use case.
func (c *Container) TransitionIssueUseCase() *usecase.TransitionIssue {
	return usecase.NewTransitionIssue(c.Tracker, c.OpLog)
}

// BulkTransitionUseCase returns a new BulkTransition use case.
func (c *Container) BulkTransitionUseCase() *usecase.BulkTransition {
	return usecase.NewBulkTransition(c.Tracker, c.Clock, c.OpLog, c.AppConfig.Bulk)
}

// AddWorklogUseCase returns a new AddWorklog use case.
func (c *Container) AddWorklogUseCase() *usecase.AddWorklog {
	return usecase.NewAddWorklog(c.Tracker, c.Cache, c.Clock, c.OpLog, c.AppConfig.Worklog.DefaultComment)
}

// ListWorklogsUseCase returns a new ListWorklogs use case.
func (c *Container) ListWorklogsUseCase() *usecase.ListWorklogs {
	return usecase.NewListWorklogs(c.Tracker)
}

// AddCommentUseCase returns a new AddComment use case.
func (c *Container) AddCommentUseCase() *usecase.AddComment {
	return usecase.NewAddComment(c.Tracker, c.OpLog)
}

// DeleteCommentUseCase returns a new DeleteComment use case.
func (c *Container) DeleteCommentUseCase() *usecase.DeleteComment {
	return usecase.NewDeleteComment(c.Tracker, c.OpLog)
}

// ListCommentsUseCase returns a new ListComments use case.
func (c *Container) ListCommentsUseCase() *usecase.ListComments {
	return usecase.NewListComments(c.Tracker)
}

// WatchIssueUseCase returns a new WatchIssue use case.
func (c *Container) WatchIssueUseCase() *usecase.WatchIssue {
	return usecase.NewWatchIssue(c.Tracker, c.OpLog)
}

// CurrentIssueUseCase returns a new CurrentIssue use case.
func (c *Container) CurrentIssueUseCase() *usecase.CurrentIssue {
	return usecase.NewCurrentIssue(c.Branches)
}

// CacheSummariesUseCase returns a new CacheSummaries use case.
func (c *Container) CacheSummariesUseCase() *usecase.CacheSummaries {
	return usecase.NewCacheSummaries(c.Tracker, c.Cache, c.OpLog, c.AppConfig.List)
}

// ListCacheUseCase returns a new ListCache use case.
func (c *Container) ListCacheUseCase() *usecase.ListCache {
	return usecase.NewListCache(c.Cache)
}

// ClearCacheUseCase returns a new ClearCache use case.
func (c *Container) ClearCacheUseCase() *usecase.ClearCache {
	return usecase.NewClearCache(c.Cache, c.OpLog)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// OpenIssueUseCase returns a new OpenIssue use case.
func (c *Container) OpenIssueUseCase() *usecase.OpenIssue {
	return usecase.NewOpenIssue(c.Executor, c.OpLog, c.AppConfig.Jira.URL, browserCommand)
}

package domain

import (
	"context"
	"time"
)

// IssueTracker is the remote issue tracking system.
type IssueTracker interface {
	// Search runs a JQL query.
	Search(ctx context.Context, q SearchQuery) ([]*Issue, error)

	// GetIssue retrieves one issue. Returns ErrIssueNotFound if it does not exist.
	GetIssue(ctx context.Context, key IssueKey) (*Issue, error)

	// UpdateIssue applies field changes.
	UpdateIssue(ctx context.Context, key IssueKey, update IssueUpdate) error

	// Transitions lists the transitions currently valid for an issue.
	Transitions(ctx context.Context, key IssueKey) ([]Transition, error)

	// Transition moves an issue through a transition.
	Transition(ctx context.Context, req TransitionRequest) error

	// BulkTransitions lists the transitions valid for every given issue.
	BulkTransitions(ctx context.Context, keys []IssueKey) ([]Transition, error)

	// BulkTransition submits a bulk transition. The server applies it
	// asynchronously; the returned task can be polled with BulkTask.
	BulkTransition(ctx context.Context, req BulkTransitionRequest) (*BulkTask, error)

	// BulkTask returns the progress of a submitted bulk task.
	BulkTask(ctx context.Context, taskID string) (*BulkTask, error)

	// Resolutions lists resolution values.
	Resolutions(ctx context.Context) ([]Resolution, error)

	// Priorities lists priority values.
	Priorities(ctx context.Context) ([]Priority, error)

	// AssignableUsers searches users assignable to an issue.
	AssignableUsers(ctx context.Context, key IssueKey, query string) ([]User, error)

	// Myself returns the authenticated user.
	Myself(ctx context.Context) (*User, error)

	// Comments lists comments on an issue.
	Comments(ctx context.Context, key IssueKey) ([]Comment, error)

	// AddComment creates a comment.
	AddComment(ctx context.Context, key IssueKey, body *Document) (*Comment, error)

	// DeleteComment deletes a comment.
	DeleteComment(ctx context.Context, key IssueKey, commentID string) error

	// Worklogs lists worklogs on an issue.
	Worklogs(ctx context.Context, key IssueKey) ([]Worklog, error)

	// AddWorklog creates a worklog.
	AddWorklog(ctx context.Context, w NewWorklog) (*Worklog, error)

	// Watchers lists watchers of an issue.
	Watchers(ctx context.Context, key IssueKey) (*Watchers, error)

	// AddWatcher makes accountID watch the issue.
	AddWatcher(ctx context.Context, key IssueKey, accountID string) error

	// RemoveWatcher stops accountID watching the issue.
	RemoveWatcher(ctx context.Context, key IssueKey, accountID string) error
}

// CachedSummary is one entry of the summary cache.
type CachedSummary struct {
	Cached  time.Time `json:"cached"`
	Key     IssueKey  `json:"key"`
	Summary string    `json:"summary"`
}

// SummaryCache maps issue keys to their summaries.
type SummaryCache interface {
	// Get returns the cached summary, or false if the key is not cached.
	Get(key IssueKey) (string, bool, error)

	// Put caches one summary.
	Put(key IssueKey, summary string) error

	// PutAll caches many summaries in one write.
	PutAll(summaries map[IssueKey]string) error

	// List returns all entries sorted by key.
	List() ([]CachedSummary, error)

	// Clear removes every entry.
	Clear() error
}

// BranchReader reads the current git branch.
type BranchReader interface {
	// CurrentBranch returns the short name of the checked out branch.
	CurrentBranch() (string, error)
}

// CommandExecutor runs external programs.
type CommandExecutor interface {
	// Execute runs the command and returns its combined output.
	Execute(cmd *ExecCommand) ([]byte, error)

	// ExecuteInteractive runs the command attached to the terminal.
	ExecuteInteractive(cmd *ExecCommand) error
}

// ConfigLoader loads configuration from files and the environment.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults <- global <- local <- env).
	Load() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo

	// LocalConfigInfo returns information about the per-repository config file.
	LocalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the config template to the global path.
	InitGlobalConfig(cfg *Config, force bool) (string, error)
}

// Logger writes operation logs, globally and per issue.
type Logger interface {
	Info(key IssueKey, category, msg string)
	Debug(key IssueKey, category, msg string)
	Warn(key IssueKey, category, msg string)
	Error(key IssueKey, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(IssueKey, string, string)  {}
func (NopLogger) Debug(IssueKey, string, string) {}
func (NopLogger) Warn(IssueKey, string, string)  {}
func (NopLogger) Error(IssueKey, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d or until ctx is done.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

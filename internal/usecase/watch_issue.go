package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

// WatchMode selects what WatchIssue does.
type WatchMode int

const (
	WatchAdd    WatchMode = iota // Start watching
	WatchRemove                  // Stop watching
	WatchToggle                  // Flip the current state
)

// WatchIssueInput contains the parameters for changing watchers.
type WatchIssueInput struct {
	Key       domain.IssueKey
	AccountID string // Empty means the current user
	Mode      WatchMode
}

// WatchIssueOutput contains the resulting watch state.
type WatchIssueOutput struct {
	AccountID string
	Watching  bool
}

// WatchIssue is the use case for watching, unwatching and toggling watch
// state of an issue.
type WatchIssue struct {
	tracker domain.IssueTracker
	logger  domain.Logger
}

// NewWatchIssue creates a new WatchIssue use case.
func NewWatchIssue(tracker domain.IssueTracker, logger domain.Logger) *WatchIssue {
	return &WatchIssue{
		tracker: tracker,
		logger:  logger,
	}
}

// Execute adds or removes the watcher.
func (uc *WatchIssue) Execute(ctx context.Context, in WatchIssueInput) (*WatchIssueOutput, error) {
	accountID := strings.TrimSpace(in.AccountID)
	self := accountID == ""
	if self {
		me, err := uc.tracker.Myself(ctx)
		if err != nil {
			return nil, fmt.Errorf("get current user: %w", err)
		}
		accountID = me.AccountID
	}

	watch := in.Mode == WatchAdd
	if in.Mode == WatchToggle {
		watchers, err := uc.tracker.Watchers(ctx, in.Key)
		if err != nil {
			return nil, fmt.Errorf("list watchers of %s: %w", in.Key, err)
		}
		watching := watchers.Contains(accountID)
		if self {
			watching = watching || watchers.IsWatching
		}
		watch = !watching
	}

	if watch {
		if err := uc.tracker.AddWatcher(ctx, in.Key, accountID); err != nil {
			return nil, fmt.Errorf("watch %s: %w", in.Key, err)
		}
		uc.logger.Info(in.Key, "watch", "added watcher "+accountID)
	} else {
		if err := uc.tracker.RemoveWatcher(ctx, in.Key, accountID); err != nil {
			return nil, fmt.Errorf("unwatch %s: %w", in.Key, err)
		}
		uc.logger.Info(in.Key, "watch", "removed watcher "+accountID)
	}

	return &WatchIssueOutput{AccountID: accountID, Watching: watch}, nil
}

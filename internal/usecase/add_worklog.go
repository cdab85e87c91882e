package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase/shared"
)

// AddWorklogInput contains the parameters for logging work.
// Fields are ordered to minimize memory padding.
type AddWorklogInput struct {
	Started   time.Time // Zero means now
	Comment   *string   // Nil uses the cached summary; "" sends no comment
	Key       domain.IssueKey
	TimeSpent string // Jira notation, e.g. "1h 30m"
}

// AddWorklogOutput contains the created worklog.
type AddWorklogOutput struct {
	Worklog *domain.Worklog
}

// AddWorklog is the use case for logging time on an issue.
type AddWorklog struct {
	tracker        domain.IssueTracker
	cache          domain.SummaryCache
	clock          domain.Clock
	logger         domain.Logger
	defaultComment string
}

// NewAddWorklog creates a new AddWorklog use case.
// defaultComment is used when the issue summary is not cached.
func NewAddWorklog(tracker domain.IssueTracker, cache domain.SummaryCache, clock domain.Clock, logger domain.Logger, defaultComment string) *AddWorklog {
	return &AddWorklog{
		tracker:        tracker,
		cache:          cache,
		clock:          clock,
		logger:         logger,
		defaultComment: defaultComment,
	}
}

// Execute parses the duration and creates the worklog.
func (uc *AddWorklog) Execute(ctx context.Context, in AddWorklogInput) (*AddWorklogOutput, error) {
	seconds, err := domain.ParseWorklogDuration(in.TimeSpent)
	if err != nil {
		return nil, err
	}

	started := in.Started
	if started.IsZero() {
		started = uc.clock.Now()
	}

	var comment string
	if in.Comment != nil {
		comment = strings.TrimSpace(*in.Comment)
	} else {
		comment = uc.DefaultComment(in.Key)
	}

	worklog, err := uc.tracker.AddWorklog(ctx, domain.NewWorklog{
		Key:              in.Key,
		Started:          started,
		Comment:          comment,
		TimeSpentSeconds: seconds,
	})
	if err != nil {
		return nil, fmt.Errorf("add worklog to %s: %w", in.Key, err)
	}

	uc.logger.Info(in.Key, "worklog", fmt.Sprintf("logged %s", domain.FormatWorklogDuration(seconds)))
	return &AddWorklogOutput{Worklog: worklog}, nil
}

// DefaultComment returns the comment used when none is given: the cached
// summary of the issue, or the configured fallback.
func (uc *AddWorklog) DefaultComment(key domain.IssueKey) string {
	if summary := shared.LookupSummary(uc.cache, key); summary != "" {
		return summary
	}
	return uc.defaultComment
}

// ListWorklogsInput contains the parameters for listing worklogs.
type ListWorklogsInput struct {
	Key domain.IssueKey
}

// ListWorklogsOutput contains the worklogs and their total.
type ListWorklogsOutput struct {
	Worklogs     []domain.Worklog
	TotalSeconds int
}

// ListWorklogs is the use case for listing the worklogs of an issue.
type ListWorklogs struct {
	tracker domain.IssueTracker
}

// NewListWorklogs creates a new ListWorklogs use case.
func NewListWorklogs(tracker domain.IssueTracker) *ListWorklogs {
	return &ListWorklogs{tracker: tracker}
}

// Execute lists worklogs.
func (uc *ListWorklogs) Execute(ctx context.Context, in ListWorklogsInput) (*ListWorklogsOutput, error) {
	worklogs, err := uc.tracker.Worklogs(ctx, in.Key)
	if err != nil {
		return nil, fmt.Errorf("list worklogs of %s: %w", in.Key, err)
	}
	out := &ListWorklogsOutput{Worklogs: worklogs}
	for _, w := range worklogs {
		out.TotalSeconds += w.TimeSpentSeconds
	}
	return out, nil
}

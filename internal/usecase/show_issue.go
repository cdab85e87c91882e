package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase/shared"
)

// ShowIssueInput contains the parameters for showing an issue.
type ShowIssueInput struct {
	Key        domain.IssueKey
	SkipExtras bool // Only fetch the issue itself
}

// ShowIssueOutput contains the issue and its activity.
// Fields are ordered to minimize memory padding.
type ShowIssueOutput struct {
	Issue    *domain.Issue
	Watchers *domain.Watchers
	Comments []domain.Comment
	Worklogs []domain.Worklog
}

// ShowIssue is the use case for displaying one issue.
type ShowIssue struct {
	tracker domain.IssueTracker
	cache   domain.SummaryCache
	logger  domain.Logger
}

// NewShowIssue creates a new ShowIssue use case.
func NewShowIssue(tracker domain.IssueTracker, cache domain.SummaryCache, logger domain.Logger) *ShowIssue {
	return &ShowIssue{
		tracker: tracker,
		cache:   cache,
		logger:  logger,
	}
}

// Execute fetches the issue with its comments, worklogs and watchers.
// Watchers are best-effort: instances with watching disabled answer 404, and
// a failure leaves Watchers nil.
func (uc *ShowIssue) Execute(ctx context.Context, in ShowIssueInput) (*ShowIssueOutput, error) {
	issue, err := uc.tracker.GetIssue(ctx, in.Key)
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", in.Key, err)
	}
	shared.CacheIssues(uc.cache, uc.logger, issue)

	out := &ShowIssueOutput{Issue: issue}
	if in.SkipExtras {
		return out, nil
	}

	if out.Comments, err = uc.tracker.Comments(ctx, in.Key); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if out.Worklogs, err = uc.tracker.Worklogs(ctx, in.Key); err != nil {
		return nil, fmt.Errorf("list worklogs: %w", err)
	}
	if out.Watchers, err = uc.tracker.Watchers(ctx, in.Key); err != nil {
		uc.logger.Warn(in.Key, "show", fmt.Sprintf("list watchers: %v", err))
		out.Watchers = nil
	}
	return out, nil
}

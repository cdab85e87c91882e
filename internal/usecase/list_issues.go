// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase/shared"
)

// ListIssuesInput contains the parameters for listing issues.
type ListIssuesInput struct {
	JQL        string // Query (defaults to [list] jql)
	MaxResults int    // Result limit (defaults to [list] max_results)
}

// ListIssuesOutput contains the result of listing issues.
type ListIssuesOutput struct {
	JQL    string // Query actually run
	Issues []*domain.Issue
}

// ListIssues is the use case for searching issues with JQL.
type ListIssues struct {
	tracker domain.IssueTracker
	cache   domain.SummaryCache
	logger  domain.Logger
	list    domain.ListConfig
}

// NewListIssues creates a new ListIssues use case.
func NewListIssues(tracker domain.IssueTracker, cache domain.SummaryCache, logger domain.Logger, list domain.ListConfig) *ListIssues {
	return &ListIssues{
		tracker: tracker,
		cache:   cache,
		logger:  logger,
		list:    list,
	}
}

// Execute runs the query and caches the summary of every returned issue.
func (uc *ListIssues) Execute(ctx context.Context, in ListIssuesInput) (*ListIssuesOutput, error) {
	jql := strings.TrimSpace(in.JQL)
	if jql == "" {
		jql = uc.list.JQL
	}
	if jql == "" {
		jql = domain.DefaultJQL
	}
	maxResults := in.MaxResults
	if maxResults <= 0 {
		maxResults = uc.list.MaxResults
	}

	issues, err := uc.tracker.Search(ctx, domain.SearchQuery{JQL: jql, MaxResults: maxResults})
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	shared.CacheIssues(uc.cache, uc.logger, issues...)
	uc.logger.Debug("", "list", fmt.Sprintf("%d issues for %q", len(issues), jql))

	return &ListIssuesOutput{JQL: jql, Issues: issues}, nil
}

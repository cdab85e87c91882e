package shared

import (
	"fmt"

	"github.com/runoshun/jiractl/internal/domain"
)

// LookupSummary returns the cached summary of key, or "" when it is not
// cached or the cache cannot be read.
func LookupSummary(cache domain.SummaryCache, key domain.IssueKey) string {
	if cache == nil {
		return ""
	}
	summary, ok, err := cache.Get(key)
	if err != nil || !ok {
		return ""
	}
	return summary
}

// CacheIssues stores the summaries of issues. A cache failure is logged
// and never fails the calling operation.
func CacheIssues(cache domain.SummaryCache, logger domain.Logger, issues ...*domain.Issue) {
	if cache == nil || len(issues) == 0 {
		return
	}
	summaries := make(map[domain.IssueKey]string, len(issues))
	for _, issue := range issues {
		if issue == nil || issue.Summary == "" {
			continue
		}
		summaries[issue.Key] = issue.Summary
	}
	if err := cache.PutAll(summaries); err != nil {
		logger.Warn("", "cache", fmt.Sprintf("cache summaries: %v", err))
	}
}

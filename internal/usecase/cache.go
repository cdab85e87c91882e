package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase/shared"
)

// CacheSummariesInput contains the parameters for filling the cache.
type CacheSummariesInput struct {
	JQL        string // Defaults to [list] jql
	MaxResults int    // Defaults to [list] max_results
}

// CacheSummariesOutput reports how many summaries were stored.
type CacheSummariesOutput struct {
	Count int
}

// CacheSummaries is the use case for prefetching issue summaries.
type CacheSummaries struct {
	tracker domain.IssueTracker
	cache   domain.SummaryCache
	logger  domain.Logger
	list    domain.ListConfig
}

// NewCacheSummaries creates a new CacheSummaries use case.
func NewCacheSummaries(tracker domain.IssueTracker, cache domain.SummaryCache, logger domain.Logger, list domain.ListConfig) *CacheSummaries {
	return &CacheSummaries{
		tracker: tracker,
		cache:   cache,
		logger:  logger,
		list:    list,
	}
}

// Execute searches with only the summary field and stores every result.
func (uc *CacheSummaries) Execute(ctx context.Context, in CacheSummariesInput) (*CacheSummariesOutput, error) {
	jql := strings.TrimSpace(in.JQL)
	if jql == "" {
		jql = uc.list.JQL
	}
	maxResults := in.MaxResults
	if maxResults <= 0 {
		maxResults = uc.list.MaxResults
	}

	issues, err := uc.tracker.Search(ctx, domain.SearchQuery{
		JQL:        jql,
		Fields:     []string{"summary"},
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	summaries := make(map[domain.IssueKey]string, len(issues))
	for _, issue := range issues {
		if issue.Summary != "" {
			summaries[issue.Key] = issue.Summary
		}
	}
	if err := uc.cache.PutAll(summaries); err != nil {
		return nil, fmt.Errorf("write cache: %w", err)
	}

	uc.logger.Info("", "cache", fmt.Sprintf("cached %d summaries", len(summaries)))
	return &CacheSummariesOutput{Count: len(summaries)}, nil
}

// ListCacheOutput contains the cache entries.
type ListCacheOutput struct {
	Entries []domain.CachedSummary
}

// ListCache is the use case for listing the summary cache.
type ListCache struct {
	cache domain.SummaryCache
}

// NewListCache creates a new ListCache use case.
func NewListCache(cache domain.SummaryCache) *ListCache {
	return &ListCache{cache: cache}
}

// Execute lists every cached summary.
func (uc *ListCache) Execute(_ context.Context) (*ListCacheOutput, error) {
	entries, err := uc.cache.List()
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	return &ListCacheOutput{Entries: entries}, nil
}

// ClearCache is the use case for emptying the summary cache.
type ClearCache struct {
	cache  domain.SummaryCache
	logger domain.Logger
}

// NewClearCache creates a new ClearCache use case.
func NewClearCache(cache domain.SummaryCache, logger domain.Logger) *ClearCache {
	return &ClearCache{cache: cache, logger: logger}
}

// Execute removes every entry.
func (uc *ClearCache) Execute(_ context.Context) error {
	if err := uc.cache.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	uc.logger.Info("", "cache", "cleared")
	return nil
}

// SummaryOf returns the cached summary of key, or "".
func SummaryOf(cache domain.SummaryCache, key domain.IssueKey) string {
	return shared.LookupSummary(cache, key)
}

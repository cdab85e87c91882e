package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/testutil"
)

func TestCacheSummaries_Execute(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	tracker.AddIssue(&domain.Issue{Key: "ABC-1", Summary: "Fix login"})
	tracker.AddIssue(&domain.Issue{Key: "ABC-2", Summary: "Add logout"})
	cache := testutil.NewMockSummaryCache()
	uc := NewCacheSummaries(tracker, cache, &testutil.MockLogger{}, newListConfig())

	// Execute
	out, err := uc.Execute(context.Background(), CacheSummariesInput{JQL: "project = ABC"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, []string{"summary"}, tracker.SearchQueries[0].Fields)
	assert.Equal(t, "project = ABC", tracker.SearchQueries[0].JQL)
	assert.Len(t, cache.Summaries, 2)
}

func TestCacheSummaries_Execute_WriteError(t *testing.T) {
	tracker := testutil.NewMockIssueTracker()
	tracker.AddIssue(&domain.Issue{Key: "ABC-1", Summary: "Fix login"})
	cache := testutil.NewMockSummaryCache()
	cache.PutErr = errors.New("disk full")
	uc := NewCacheSummaries(tracker, cache, &testutil.MockLogger{}, newListConfig())

	_, err := uc.Execute(context.Background(), CacheSummariesInput{})

	assert.ErrorContains(t, err, "disk full")
}

func TestListCache_Execute(t *testing.T) {
	cache := testutil.NewMockSummaryCache()
	cache.Summaries["ABC-2"] = "Two"
	cache.Summaries["ABC-1"] = "One"

	out, err := NewListCache(cache).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, domain.IssueKey("ABC-1"), out.Entries[0].Key)
}

func TestClearCache_Execute(t *testing.T) {
	cache := testutil.NewMockSummaryCache()
	cache.Summaries["ABC-1"] = "One"

	err := NewClearCache(cache, &testutil.MockLogger{}).Execute(context.Background())

	require.NoError(t, err)
	assert.True(t, cache.Cleared)
	assert.Empty(t, cache.Summaries)
}

func TestSummaryOf(t *testing.T) {
	cache := testutil.NewMockSummaryCache()
	cache.Summaries["ABC-1"] = "One"
	assert.Equal(t, "One", SummaryOf(cache, "ABC-1"))
	assert.Empty(t, SummaryOf(cache, "ABC-2"))
}

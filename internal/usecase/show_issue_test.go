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

func TestShowIssue_Execute(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	tracker.AddIssue(&domain.Issue{Key: "ABC-1", Summary: "Fix login"})
	tracker.CommentsByKey["ABC-1"] = []domain.Comment{{ID: "10", Body: domain.NewDocument("hi")}}
	tracker.WorklogsByKey["ABC-1"] = []domain.Worklog{{ID: "20", TimeSpentSeconds: 3600}}
	tracker.WatchersByKey["ABC-1"] = &domain.Watchers{Count: 1, IsWatching: true}
	cache := testutil.NewMockSummaryCache()
	uc := NewShowIssue(tracker, cache, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), ShowIssueInput{Key: "ABC-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Fix login", out.Issue.Summary)
	assert.Len(t, out.Comments, 1)
	assert.Len(t, out.Worklogs, 1)
	assert.True(t, out.Watchers.IsWatching)
	assert.Equal(t, "Fix login", cache.Summaries["ABC-1"])
}

func TestShowIssue_Execute_SkipExtras(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	tracker.AddIssue(&domain.Issue{Key: "ABC-1", Summary: "Fix login"})
	tracker.CommentErr = errors.New("must not be called")
	uc := NewShowIssue(tracker, testutil.NewMockSummaryCache(), &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), ShowIssueInput{Key: "ABC-1", SkipExtras: true})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, out.Comments)
	assert.Nil(t, out.Watchers)
}

func TestShowIssue_Execute_NotFound(t *testing.T) {
	// Setup
	uc := NewShowIssue(testutil.NewMockIssueTracker(), testutil.NewMockSummaryCache(), &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ShowIssueInput{Key: "ABC-404"})

	// Assert
	require.ErrorIs(t, err, domain.ErrIssueNotFound)
	assert.Contains(t, err.Error(), "ABC-404")
}

func TestShowIssue_Execute_ExtrasError(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	tracker.AddIssue(&domain.Issue{Key: "ABC-1", Summary: "Fix login"})
	tracker.WorklogErr = errors.New("forbidden")
	uc := NewShowIssue(tracker, testutil.NewMockSummaryCache(), &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ShowIssueInput{Key: "ABC-1"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list worklogs")
}

func TestShowIssue_Execute_WatchersUnavailable(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	tracker.AddIssue(&domain.Issue{Key: "ABC-1", Summary: "Fix login"})
	tracker.CommentsByKey["ABC-1"] = []domain.Comment{{ID: "10", Body: domain.NewDocument("hi")}}
	tracker.WatchErr = domain.ErrIssueNotFound
	logger := &testutil.MockLogger{}
	uc := NewShowIssue(tracker, testutil.NewMockSummaryCache(), logger)

	// Execute
	out, err := uc.Execute(context.Background(), ShowIssueInput{Key: "ABC-1"})

	// Assert
	require.NoError(t, err)
	assert.Len(t, out.Comments, 1)
	assert.Nil(t, out.Watchers)
	require.NotEmpty(t, logger.Entries)
	last := logger.Entries[len(logger.Entries)-1]
	assert.Equal(t, "WARN", last.Level)
	assert.Contains(t, last.Msg, "list watchers")
}

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

func ptr[T any](v T) *T { return &v }

func TestUpdateIssue_Execute_Fields(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	cache := testutil.NewMockSummaryCache()
	logger := &testutil.MockLogger{}
	uc := NewUpdateIssue(tracker, cache, logger)

	// Execute
	out, err := uc.Execute(context.Background(), UpdateIssueInput{
		Key:      "ABC-1",
		Summary:  ptr("  New title "),
		Priority: ptr("High"),
		Assignee: ptr("acc-42"),
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, tracker.Updates, 1)
	u := tracker.Updates[0].Update
	assert.Equal(t, domain.IssueKey("ABC-1"), tracker.Updates[0].Key)
	assert.Equal(t, "New title", *u.Summary)
	assert.Equal(t, "High", *u.Priority)
	assert.Equal(t, "acc-42", *u.AssigneeID)
	assert.Equal(t, u, out.Update)
	assert.Equal(t, "New title", cache.Summaries["ABC-1"])
	assert.Contains(t, logger.Messages("ABC-1")[0], `summary="New title"`)
}

func TestUpdateIssue_Execute_AssigneeKeywords(t *testing.T) {
	tests := []struct {
		name     string
		assignee string
		expected string
	}{
		{"me resolves to current user", "me", "me-1"},
		{"ME is case-insensitive", "ME", "me-1"},
		{"none unassigns", "none", ""},
		{"empty unassigns", "  ", ""},
		{"account id is kept", "5b10ac8d82e05b22cc7d4ef5", "5b10ac8d82e05b22cc7d4ef5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := testutil.NewMockIssueTracker()
			uc := NewUpdateIssue(tracker, nil, &testutil.MockLogger{})

			_, err := uc.Execute(context.Background(), UpdateIssueInput{Key: "ABC-1", Assignee: ptr(tt.assignee)})

			require.NoError(t, err)
			require.NotNil(t, tracker.Updates[0].Update.AssigneeID)
			assert.Equal(t, tt.expected, *tracker.Updates[0].Update.AssigneeID)
		})
	}
}

func TestUpdateIssue_Execute_MyselfError(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	tracker.MyselfErr = errors.New("unauthorized")
	uc := NewUpdateIssue(tracker, nil, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), UpdateIssueInput{Key: "ABC-1", Assignee: ptr("me")})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get current user")
	assert.Empty(t, tracker.Updates)
}

func TestUpdateIssue_Execute_Labels(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	uc := NewUpdateIssue(tracker, nil, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), UpdateIssueInput{
		Key:          "ABC-1",
		AddLabels:    []string{"backend", " backend ", ""},
		RemoveLabels: []string{"needs triage"},
	})

	// Assert
	require.NoError(t, err)
	u := tracker.Updates[0].Update
	assert.Equal(t, []string{"backend"}, u.AddLabels)
	assert.Equal(t, []string{"needs_triage"}, u.RemoveLabels)
	assert.False(t, u.SetLabels)
}

func TestUpdateIssue_Execute_ClearLabels(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	uc := NewUpdateIssue(tracker, nil, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), UpdateIssueInput{Key: "ABC-1", SetLabels: true})

	// Assert
	require.NoError(t, err)
	assert.True(t, tracker.Updates[0].Update.SetLabels)
	assert.Empty(t, tracker.Updates[0].Update.Labels)
}

func TestUpdateIssue_Execute_Description(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	uc := NewUpdateIssue(tracker, nil, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), UpdateIssueInput{Key: "ABC-1", Description: ptr("line one\nline two")})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", tracker.Updates[0].Update.Description.PlainText())
}

func TestUpdateIssue_Execute_NoFields(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	uc := NewUpdateIssue(tracker, nil, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), UpdateIssueInput{Key: "ABC-1", Priority: ptr(" "), AddLabels: []string{""}})

	// Assert
	require.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	assert.Empty(t, tracker.Updates)
}

func TestUpdateIssue_Execute_EmptySummary(t *testing.T) {
	// Setup
	uc := NewUpdateIssue(testutil.NewMockIssueTracker(), nil, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), UpdateIssueInput{Key: "ABC-1", Summary: ptr("   ")})

	// Assert
	require.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestUpdateIssue_Execute_TrackerError(t *testing.T) {
	// Setup
	tracker := testutil.NewMockIssueTracker()
	tracker.UpdateErr = domain.ErrIssueNotFound
	cache := testutil.NewMockSummaryCache()
	uc := NewUpdateIssue(tracker, cache, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), UpdateIssueInput{Key: "ABC-1", Summary: ptr("x")})

	// Assert
	require.ErrorIs(t, err, domain.ErrIssueNotFound)
	assert.Empty(t, cache.Summaries)
}

func TestSplitLabels(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitLabels("a, b  c,,a"))
	assert.Nil(t, SplitLabels(" , "))
}

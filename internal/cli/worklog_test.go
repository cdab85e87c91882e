package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/jiractl/internal/domain"
)

func TestWorklogAddCommand(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	require.NoError(t, c.Cache.Put("ABC-1", "Fix login redirect"))
	cmd := newWorklogCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"add", "1h 30m"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Logged 1h 30m on ABC-1\n", buf.String())
	require.Len(t, tracker.AddedWorklogs, 1)
	wl := tracker.AddedWorklogs[0]
	assert.Equal(t, domain.IssueKey("ABC-1"), wl.Key)
	assert.Equal(t, 5400, wl.TimeSpentSeconds)
	assert.Equal(t, "Fix login redirect", wl.Comment, "comment defaults to the cached summary")
	assert.True(t, testNow.Equal(wl.Started))
}

func TestWorklogAddCommand_Flags(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	cmd := newWorklogCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "ABC-2", "45m", "--comment", "Planning", "--started", "2026-03-09 09:15"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	require.Len(t, tracker.AddedWorklogs, 1)
	wl := tracker.AddedWorklogs[0]
	assert.Equal(t, domain.IssueKey("ABC-2"), wl.Key)
	assert.Equal(t, 45*60, wl.TimeSpentSeconds)
	assert.Equal(t, "Planning", wl.Comment)
	assert.True(t, time.Date(2026, 3, 9, 9, 15, 0, 0, time.Local).Equal(wl.Started))
}

func TestWorklogAddCommand_EmptyCommentOverridesDefault(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	require.NoError(t, c.Cache.Put("ABC-1", "Fix login redirect"))
	cmd := newWorklogCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "ABC-1", "2h", "--comment", ""})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	require.Len(t, tracker.AddedWorklogs, 1)
	assert.Empty(t, tracker.AddedWorklogs[0].Comment)
}

func TestWorklogAddCommand_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		msg     string
	}{
		{"bad duration", []string{"add", "ABC-1", "soon"}, domain.ErrInvalidDuration, ""},
		{"bad started", []string{"add", "ABC-1", "1h", "--started", "yesterday"}, nil, "expected YYYY-MM-DD HH:MM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := newTestTracker()
			cmd := newWorklogCommand(newTestContainer(tracker))
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.ErrorContains(t, err, tt.msg)
			}
			assert.Empty(t, tracker.AddedWorklogs)
		})
	}
}

func TestWorklogListCommand(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	tracker.WorklogsByKey["ABC-1"] = []domain.Worklog{
		{ID: "20", Author: &domain.User{DisplayName: "Alice"}, TimeSpentSeconds: 3600, Comment: "Review", Started: time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)},
		{ID: "21", Author: &domain.User{DisplayName: "Bob"}, TimeSpentSeconds: 1800, Started: time.Date(2026, 3, 9, 14, 0, 0, 0, time.Local)},
	}
	cmd := newWorklogCommand(newTestContainer(tracker))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"list", "ABC-1"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "AUTHOR")
	assert.Contains(t, output, "2026-03-09 09:00")
	assert.Contains(t, output, "Review")
	assert.Contains(t, output, "30m")
	assert.Contains(t, output, "Total: 1h 30m")
}

func TestWorklogListCommand_Empty(t *testing.T) {
	cmd := newWorklogCommand(newTestContainer(newTestTracker()))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"list"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No worklogs on ABC-1\n", buf.String())
}

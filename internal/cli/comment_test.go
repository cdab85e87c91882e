package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/jiractl/internal/domain"
)

// mockEditor replaces openEditorFunc for the duration of the test.
// edit receives the draft content and returns what the user "saved".
func mockEditor(t *testing.T, edit func(draft string) string) {
	t.Helper()
	original := openEditorFunc
	t.Cleanup(func() { openEditorFunc = original })
	openEditorFunc = func(path string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(edit(string(content))), 0o600)
	}
}

func TestCommentAddCommand_Message(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	cmd := newCommentCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"add", "ABC-2", "Deployed to staging"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Added comment 101 to ABC-2\n", buf.String())
	require.Len(t, tracker.AddedComments, 1)
	assert.Equal(t, domain.IssueKey("ABC-2"), tracker.AddedComments[0].Key)
	assert.Equal(t, "Deployed to staging", tracker.AddedComments[0].Body.PlainText())
}

func TestCommentAddCommand_Stdin(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	cmd := newCommentCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("Line one\nLine two\n"))
	cmd.SetArgs([]string{"add", "ABC-1", "-"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	require.Len(t, tracker.AddedComments, 1)
	assert.Equal(t, "Line one\nLine two", tracker.AddedComments[0].Body.PlainText())
}

func TestCommentAddCommand_Editor(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	require.NoError(t, c.Cache.Put("ABC-1", "Fix login redirect"))

	var draft string
	mockEditor(t, func(content string) string {
		draft = content
		return "Reproduced on Safari only.\n" + content
	})

	cmd := newCommentCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"add"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, draft, "# ABC-1: Fix login redirect")
	require.Len(t, tracker.AddedComments, 1)
	assert.Equal(t, "Reproduced on Safari only.", tracker.AddedComments[0].Body.PlainText())
}

func TestCommentAddCommand_EmptyDraftAborts(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	mockEditor(t, func(content string) string { return content })

	cmd := newCommentCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "ABC-1"})

	// Execute
	err := cmd.Execute()

	// Assert
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, tracker.AddedComments)
}

func TestCommentAddCommand_EditorFails(t *testing.T) {
	original := openEditorFunc
	t.Cleanup(func() { openEditorFunc = original })
	openEditorFunc = func(string) error { return errors.New("editor crashed") }

	tracker := newTestTracker()
	cmd := newCommentCommand(newTestContainer(tracker))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "ABC-1"})

	err := cmd.Execute()

	assert.ErrorContains(t, err, "editor crashed")
	assert.Empty(t, tracker.AddedComments)
}

func TestCommentDeleteCommand(t *testing.T) {
	// Setup
	tracker := newTestTracker()
	tracker.CommentsByKey["ABC-1"] = []domain.Comment{
		{ID: "10", Body: domain.NewDocument("old")},
		{ID: "11", Body: domain.NewDocument("new")},
	}
	c := newTestContainer(tracker)
	cmd := newCommentCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"delete", "10"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Deleted comment 10 on ABC-1\n", buf.String())
	require.Len(t, tracker.DeletedComments, 1)
	assert.Equal(t, "10", tracker.DeletedComments[0].CommentID)
}

func TestCommentDeleteCommand_NotFound(t *testing.T) {
	tracker := newTestTracker()
	c := newTestContainer(tracker)
	cmd := newCommentCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"delete", "ABC-2", "99"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	assert.Empty(t, tracker.DeletedComments)
}

func TestCommentListCommand(t *testing.T) {
	t.Run("with comments", func(t *testing.T) {
		tracker := newTestTracker()
		tracker.CommentsByKey["ABC-1"] = []domain.Comment{
			{ID: "10", Author: &domain.User{DisplayName: "Alice"}, Body: domain.NewDocument("Looks good"), Created: testNow.Add(-30 * time.Minute)},
		}
		cmd := newCommentCommand(newTestContainer(tracker))
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"list", "ABC-1"})

		require.NoError(t, cmd.Execute())
		assert.Equal(t, "  [10] Alice, 30 minutes ago\n    Looks good\n", buf.String())
	})

	t.Run("empty", func(t *testing.T) {
		cmd := newCommentCommand(newTestContainer(newTestTracker()))
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"list"})

		require.NoError(t, cmd.Execute())
		assert.Equal(t, "No comments on ABC-1\n", buf.String())
	})
}

func TestStripDraftComments(t *testing.T) {
	input := "\nFirst\n# ABC-1: Fix\n\nSecond\n# trailing\n"
	assert.Equal(t, "First\n\nSecond", stripDraftComments(input))
}

func TestGetEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	assert.Equal(t, "vi", getEditor())

	t.Setenv("VISUAL", "nano")
	assert.Equal(t, "nano", getEditor())

	t.Setenv("EDITOR", "code --wait")
	assert.Equal(t, "code --wait", getEditor())
}

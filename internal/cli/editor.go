package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/infra/executor"
)

// openEditorFunc is a function variable for opening the editor, allowing it to be mocked in tests.
var openEditorFunc = openEditor

// getEditor returns the user's preferred editor from environment variables.
// It checks EDITOR, then VISUAL, and defaults to vi if neither is set.
func getEditor() string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}
	return editor
}

// openEditor opens the specified file in the user's editor.
// It returns an error if the editor cannot be started or exits with a non-zero status.
func openEditor(filePath string) error {
	editor := getEditor()
	if err := executor.NewClient().ExecuteInteractive(domain.EditorCommand(editor, filePath)); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}
	return nil
}

// draftInEditor writes a template whose "#" lines describe the draft, lets
// the user edit it and returns the text with those lines removed.
func draftInEditor(header string) (string, error) {
	dir, err := os.MkdirTemp("", "jiractl-")
	if err != nil {
		return "", fmt.Errorf("create draft directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "COMMENT.md")
	template := fmt.Sprintf("\n# %s\n# Write the comment above. Lines starting with '#' are ignored.\n# An empty comment aborts.\n", header)
	if err := os.WriteFile(path, []byte(template), 0o600); err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}

	if err := openEditorFunc(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	return stripDraftComments(string(content)), nil
}

// stripDraftComments drops "#" lines and surrounding blank lines.
func stripDraftComments(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

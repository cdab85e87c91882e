// Package shared holds helpers used by several use cases.
package shared

import (
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

// ValidateMessage normalizes a comment or worklog text typed by the user.
// Line endings become "\n", trailing spaces are dropped from every line and
// leading or trailing blank lines are removed. An empty result is
// domain.ErrEmptyMessage.
func ValidateMessage(message string) (string, error) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	trimmed := strings.Trim(strings.Join(lines, "\n"), "\n")
	if strings.TrimSpace(trimmed) == "" {
		return "", domain.ErrEmptyMessage
	}
	return trimmed, nil
}

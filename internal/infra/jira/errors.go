package jira

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/runoshun/jiractl/internal/domain"
)

// APIError is a non-2xx response from Jira.
type APIError struct {
	Method     string
	Path       string
	Messages   []string
	StatusCode int
}

// newAPIError extracts Jira's error messages from a response body.
// Jira reports them as {"errorMessages": [...], "errors": {"field": "msg"}}.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		parsed.Get("errorMessages").ForEach(func(_, v gjson.Result) bool {
			if s := strings.TrimSpace(v.String()); s != "" {
				e.Messages = append(e.Messages, s)
			}
			return true
		})
		parsed.Get("errors").ForEach(func(k, v gjson.Result) bool {
			e.Messages = append(e.Messages, fmt.Sprintf("%s: %s", k.String(), v.String()))
			return true
		})
		if msg := parsed.Get("message").String(); msg != "" && len(e.Messages) == 0 {
			e.Messages = append(e.Messages, msg)
		}
	}
	if len(e.Messages) == 0 {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "<") {
			e.Messages = append(e.Messages, text)
		} else {
			e.Messages = append(e.Messages, http.StatusText(status))
		}
	}
	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira %s %s: %d %s", e.Method, e.Path, e.StatusCode, strings.Join(e.Messages, "; "))
}

// Retryable reports whether the request may be repeated: 429 for any method,
// 5xx only for methods other than POST.
func (e *APIError) Retryable() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode >= 500 && e.Method != http.MethodPost
}

// Is maps HTTP statuses onto domain errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrIssueNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

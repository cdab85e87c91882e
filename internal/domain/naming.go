package domain

import (
	"fmt"
	"strings"
)

// CommentDraftHeader is the first line of a comment draft: "KEY: summary".
func CommentDraftHeader(key IssueKey, summary string) string {
	if summary == "" {
		return string(key)
	}
	return fmt.Sprintf("%s: %s", key, summary)
}

// BrowseURL returns the web URL of an issue.
func BrowseURL(baseURL string, key IssueKey) string {
	return strings.TrimRight(baseURL, "/") + "/browse/" + string(key)
}

// JiraTimeLayout is the timestamp layout Jira expects in request bodies.
const JiraTimeLayout = "2006-01-02T15:04:05.000-0700"

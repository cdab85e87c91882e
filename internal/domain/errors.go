package domain

import "errors"

// Domain errors.
var (
	ErrIssueNotFound        = errors.New("issue not found")
	ErrInvalidIssueKey      = errors.New("invalid issue key")
	ErrNoTransitions        = errors.New("no transitions available")
	ErrTransitionNotFound   = errors.New("transition not found")
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrInvalidDuration      = errors.New("invalid duration")
	ErrNoFieldsToUpdate     = errors.New("no fields to update")
	ErrNotConfigured        = errors.New("jira not configured (set JIRA_URL, JIRA_EMAIL and JIRA_API_TOKEN or run 'jiractl config init')")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrConfigExists         = errors.New("config file already exists")
	ErrNoIssuesSelected     = errors.New("no issues selected")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrBulkTransitionFailed = errors.New("bulk transition failed")
	ErrNoIssueInBranch      = errors.New("no issue key in current branch")
	ErrNotGitRepository     = errors.New("not a git repository (or any of the parent directories)")
	ErrUnauthorized         = errors.New("unauthorized")
)

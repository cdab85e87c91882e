package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// IssueKey is a project-prefixed Jira issue key such as "PROJ-123".
type IssueKey string

var (
	issueKeyPattern   = regexp.MustCompile(`^[A-Z][A-Z0-9_]+-[0-9]+$`)
	issueKeyInText    = regexp.MustCompile(`(?i)\b([a-z][a-z0-9_]+-[0-9]+)\b`)
	issueKeyProjectRe = regexp.MustCompile(`^([A-Z][A-Z0-9_]+)-`)
)

// ParseIssueKey normalizes s to upper case and validates it.
func ParseIssueKey(s string) (IssueKey, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if !issueKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidIssueKey)
	}
	return IssueKey(key), nil
}

// ParseIssueKeys parses every element of keys, failing on the first invalid one.
func ParseIssueKeys(keys []string) ([]IssueKey, error) {
	out := make([]IssueKey, 0, len(keys))
	for _, k := range keys {
		key, err := ParseIssueKey(k)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, nil
}

// ExtractIssueKey finds the first issue key in free text, e.g. a branch name
// like "feature/proj-12-login". Returns false when none is present.
func ExtractIssueKey(s string) (IssueKey, bool) {
	m := issueKeyInText.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	key, err := ParseIssueKey(m[1])
	if err != nil {
		return "", false
	}
	return key, true
}

// Project returns the project prefix of the key.
func (k IssueKey) Project() string {
	m := issueKeyProjectRe.FindStringSubmatch(string(k))
	if m == nil {
		return ""
	}
	return m[1]
}

func (k IssueKey) String() string {
	return string(k)
}

// KeyStrings converts keys to plain strings for request payloads.
func KeyStrings(keys []IssueKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// StatusCategory is the coarse grouping Jira assigns every status.
type StatusCategory string

const (
	CategoryToDo       StatusCategory = "new"
	CategoryInProgress StatusCategory = "indeterminate"
	CategoryDone       StatusCategory = "done"
	CategoryUnknown    StatusCategory = "undefined"
)

// Display returns a short label for the category.
func (c StatusCategory) Display() string {
	switch c {
	case CategoryToDo:
		return "To Do"
	case CategoryInProgress:
		return "In Progress"
	case CategoryDone:
		return "Done"
	case CategoryUnknown:
		return "Unknown"
	}
	return string(c)
}

// Status is an issue's workflow status.
type Status struct {
	ID       string
	Name     string
	Category StatusCategory
}

// User is a Jira account.
type User struct {
	AccountID   string `json:"accountId" yaml:"accountId"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Active      bool   `json:"active" yaml:"active"`
}

// Name returns the display name, falling back to the account id.
func (u *User) Name() string {
	if u == nil {
		return "Unassigned"
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.AccountID
}

// Priority is an issue priority.
type Priority struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Resolution is a value that can be set when an issue is closed.
type Resolution struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Transition is a workflow operation moving an issue to another status.
type Transition struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	ToStatus string `json:"to" yaml:"to"`
	// HasScreen reports whether Jira shows a screen (e.g. resolution) for it.
	HasScreen bool `json:"hasScreen" yaml:"hasScreen"`
}

// Label renders the transition as shown in menus.
func (t Transition) Label() string {
	if t.ToStatus == "" || strings.EqualFold(t.ToStatus, t.Name) {
		return t.Name
	}
	return fmt.Sprintf("%s → %s", t.Name, t.ToStatus)
}

// FindTransition looks a transition up by id first, then by case-insensitive name.
func FindTransition(transitions []Transition, idOrName string) (Transition, error) {
	needle := strings.TrimSpace(idOrName)
	for _, t := range transitions {
		if t.ID == needle {
			return t, nil
		}
	}
	for _, t := range transitions {
		if strings.EqualFold(t.Name, needle) || strings.EqualFold(t.ToStatus, needle) {
			return t, nil
		}
	}
	return Transition{}, fmt.Errorf("%q: %w", idOrName, ErrTransitionNotFound)
}

// Issue is a Jira work item.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Created     time.Time
	Updated     time.Time
	Description *Document
	Assignee    *User
	Reporter    *User
	Key         IssueKey
	ID          string
	Summary     string
	Type        string
	Priority    string
	Resolution  string
	Parent      IssueKey
	Status      Status
	Labels      []string
}

// IsDone reports whether the issue sits in a done-category status.
func (i *Issue) IsDone() bool {
	return i.Status.Category == CategoryDone
}

// Comment is a comment on an issue.
type Comment struct {
	Created time.Time
	Updated time.Time
	Body    *Document
	Author  *User
	ID      string
}

// Worklog is a time-tracking entry attached to an issue.
// Fields are ordered to minimize memory padding.
type Worklog struct {
	Started          time.Time
	Author           *User
	ID               string
	TimeSpent        string
	Comment          string
	TimeSpentSeconds int
}

// Watchers describes who watches an issue.
type Watchers struct {
	Users      []User
	Count      int
	IsWatching bool
}

// Contains reports whether accountID is among the watchers.
func (w *Watchers) Contains(accountID string) bool {
	for _, u := range w.Users {
		if u.AccountID == accountID {
			return true
		}
	}
	return false
}

// BulkTaskStatus is the state of an asynchronous server-side bulk operation.
type BulkTaskStatus string

const (
	BulkEnqueued  BulkTaskStatus = "ENQUEUED"
	BulkRunning   BulkTaskStatus = "RUNNING"
	BulkComplete  BulkTaskStatus = "COMPLETE"
	BulkFailed    BulkTaskStatus = "FAILED"
	BulkCancelled BulkTaskStatus = "CANCELLED"
	BulkDead      BulkTaskStatus = "DEAD"
)

// IsFinal reports whether the task will not change any more.
func (s BulkTaskStatus) IsFinal() bool {
	switch s {
	case BulkComplete, BulkFailed, BulkCancelled, BulkDead:
		return true
	case BulkEnqueued, BulkRunning:
		return false
	}
	return false
}

// BulkTask is a submitted bulk operation.
type BulkTask struct {
	ID              string
	Status          BulkTaskStatus
	FailedKeys      []string
	ProgressPercent int
}

// SearchQuery selects issues with JQL.
type SearchQuery struct {
	JQL        string
	Fields     []string
	MaxResults int
}

// IssueUpdate is a set of field changes for one issue.
// Nil pointers leave the field untouched.
type IssueUpdate struct {
	Summary      *string
	Description  *Document
	Priority     *string
	AssigneeID   *string // empty string unassigns
	Labels       []string
	AddLabels    []string
	RemoveLabels []string
	SetLabels    bool
}

// IsEmpty reports whether the update changes nothing.
func (u IssueUpdate) IsEmpty() bool {
	return u.Summary == nil && u.Description == nil && u.Priority == nil &&
		u.AssigneeID == nil && !u.SetLabels && len(u.AddLabels) == 0 && len(u.RemoveLabels) == 0
}

// TransitionRequest moves one issue through a transition.
type TransitionRequest struct {
	Comment      *Document
	Key          IssueKey
	TransitionID string
	Resolution   string
}

// BulkTransitionRequest moves several issues through the same transition.
type BulkTransitionRequest struct {
	TransitionID string
	Keys         []IssueKey
	Notify       bool
}

// NewWorklog is a worklog to be created.
type NewWorklog struct {
	Started          time.Time
	Key              IssueKey
	Comment          string
	TimeSpentSeconds int
}

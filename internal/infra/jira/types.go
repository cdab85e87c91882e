package jira

import (
	"encoding/json"
	"time"

	"github.com/runoshun/jiractl/internal/domain"
)

// issueFields are the fields requested for list and detail views.
var issueFields = []string{
	"summary", "status", "issuetype", "priority", "assignee", "reporter",
	"resolution", "labels", "created", "updated", "description", "parent",
}

// =============================================================================
// JIRA API RESPONSE TYPES
// =============================================================================

type userJSON struct {
	AccountID    string `json:"accountId"`
	Name         string `json:"name"` // Data Center has no account ids
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active"`
}

type namedJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type statusJSON struct {
	StatusCategory *struct {
		Key string `json:"key"`
	} `json:"statusCategory,omitempty"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type issueJSON struct {
	ID     string     `json:"id"`
	Key    string     `json:"key"`
	Fields fieldsJSON `json:"fields"`
}

type fieldsJSON struct {
	Description json.RawMessage `json:"description,omitempty"`
	Status      *statusJSON     `json:"status,omitempty"`
	Priority    *namedJSON      `json:"priority,omitempty"`
	IssueType   *namedJSON      `json:"issuetype,omitempty"`
	Resolution  *namedJSON      `json:"resolution,omitempty"`
	Reporter    *userJSON       `json:"reporter,omitempty"`
	Assignee    *userJSON       `json:"assignee,omitempty"`
	Parent      *struct {
		Key string `json:"key"`
	} `json:"parent,omitempty"`
	Summary string   `json:"summary"`
	Created string   `json:"created,omitempty"`
	Updated string   `json:"updated,omitempty"`
	Labels  []string `json:"labels,omitempty"`
}

type searchResponse struct {
	NextPageToken string      `json:"nextPageToken"`
	Issues        []issueJSON `json:"issues"`
	IsLast        bool        `json:"isLast"`
}

type transitionsResponse struct {
	Transitions []struct {
		ID        string     `json:"id"`
		Name      string     `json:"name"`
		To        statusJSON `json:"to"`
		HasScreen bool       `json:"hasScreen"`
	} `json:"transitions"`
}

type bulkTransitionsResponse struct {
	AvailableTransitions []struct {
		Issues      []string `json:"issues"`
		Transitions []struct {
			To struct {
				StatusName string `json:"statusName"`
			} `json:"to"`
			TransitionName string      `json:"transitionName"`
			TransitionID   json.Number `json:"transitionId"`
			IsAvailable    bool        `json:"isAvailable"`
		} `json:"transitions"`
	} `json:"availableTransitions"`
}

type bulkSubmitResponse struct {
	TaskID string `json:"taskId"`
}

type bulkQueueResponse struct {
	FailedAccessibleIssues map[string]json.RawMessage `json:"failedAccessibleIssues"`
	TaskID                 string                     `json:"taskId"`
	Status                 string                     `json:"status"`
	ProgressPercent        int                        `json:"progressPercent"`
}

type commentJSON struct {
	Body    json.RawMessage `json:"body"`
	Author  *userJSON       `json:"author,omitempty"`
	ID      string          `json:"id"`
	Created string          `json:"created,omitempty"`
	Updated string          `json:"updated,omitempty"`
}

type commentsResponse struct {
	Comments   []commentJSON `json:"comments"`
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
}

type worklogJSON struct {
	Comment          json.RawMessage `json:"comment,omitempty"`
	Author           *userJSON       `json:"author,omitempty"`
	ID               string          `json:"id"`
	Started          string          `json:"started,omitempty"`
	TimeSpent        string          `json:"timeSpent"`
	TimeSpentSeconds int             `json:"timeSpentSeconds"`
}

type worklogsResponse struct {
	Worklogs []worklogJSON `json:"worklogs"`
	Total    int           `json:"total"`
}

type watchersResponse struct {
	Watchers   []userJSON `json:"watchers"`
	WatchCount int        `json:"watchCount"`
	IsWatching bool       `json:"isWatching"`
}

// =============================================================================
// MAPPING
// =============================================================================

func (u *userJSON) toDomain() *domain.User {
	if u == nil {
		return nil
	}
	id := u.AccountID
	if id == "" {
		id = u.Name
	}
	return &domain.User{
		AccountID:   id,
		DisplayName: u.DisplayName,
		Email:       u.EmailAddress,
		Active:      u.Active,
	}
}

func (s *statusJSON) toDomain() domain.Status {
	if s == nil {
		return domain.Status{}
	}
	status := domain.Status{ID: s.ID, Name: s.Name, Category: domain.CategoryUnknown}
	if s.StatusCategory != nil && s.StatusCategory.Key != "" {
		status.Category = domain.StatusCategory(s.StatusCategory.Key)
	}
	return status
}

func (i *issueJSON) toDomain() *domain.Issue {
	f := i.Fields
	issue := &domain.Issue{
		Key:      domain.IssueKey(i.Key),
		ID:       i.ID,
		Summary:  f.Summary,
		Status:   f.Status.toDomain(),
		Labels:   f.Labels,
		Assignee: f.Assignee.toDomain(),
		Reporter: f.Reporter.toDomain(),
		Created:  parseJiraTime(f.Created),
		Updated:  parseJiraTime(f.Updated),
	}
	if f.IssueType != nil {
		issue.Type = f.IssueType.Name
	}
	if f.Priority != nil {
		issue.Priority = f.Priority.Name
	}
	if f.Resolution != nil {
		issue.Resolution = f.Resolution.Name
	}
	if f.Parent != nil {
		issue.Parent = domain.IssueKey(f.Parent.Key)
	}
	// A malformed description should not hide the rest of the issue.
	if doc, err := domain.ParseDocument(f.Description); err == nil {
		issue.Description = doc
	}
	return issue
}

func (c *commentJSON) toDomain() domain.Comment {
	comment := domain.Comment{
		ID:      c.ID,
		Author:  c.Author.toDomain(),
		Created: parseJiraTime(c.Created),
		Updated: parseJiraTime(c.Updated),
	}
	if doc, err := domain.ParseDocument(c.Body); err == nil {
		comment.Body = doc
	}
	return comment
}

func (w *worklogJSON) toDomain() domain.Worklog {
	wl := domain.Worklog{
		ID:               w.ID,
		Author:           w.Author.toDomain(),
		Started:          parseJiraTime(w.Started),
		TimeSpent:        w.TimeSpent,
		TimeSpentSeconds: w.TimeSpentSeconds,
	}
	if wl.TimeSpent == "" {
		wl.TimeSpent = domain.FormatWorklogDuration(w.TimeSpentSeconds)
	}
	if doc, err := domain.ParseDocument(w.Comment); err == nil && doc != nil {
		wl.Comment = doc.PlainText()
	}
	return wl
}

func parseJiraTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	layouts := []string{
		domain.JiraTimeLayout,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

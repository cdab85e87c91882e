package jira

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

const (
	apiV3 = "/rest/api/3"
	apiV2 = "/rest/api/2"

	// maxPageSize is the Jira API hard limit per request.
	maxPageSize = 100
)

func issuePath(version string, key domain.IssueKey, rest ...string) string {
	p := version + "/issue/" + url.PathEscape(string(key))
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

// Search runs a JQL query, following nextPageToken until MaxResults issues
// were collected or the result set ends.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]*domain.Issue, error) {
	limit := q.MaxResults
	if limit <= 0 {
		limit = domain.DefaultMaxResults
	}
	fields := q.Fields
	if len(fields) == 0 {
		fields = issueFields
	}

	var issues []*domain.Issue
	token := ""
	for len(issues) < limit {
		params := url.Values{}
		params.Set("jql", q.JQL)
		params.Set("fields", strings.Join(fields, ","))
		params.Set("maxResults", strconv.Itoa(min(limit-len(issues), maxPageSize)))
		if token != "" {
			params.Set("nextPageToken", token)
		}

		var resp searchResponse
		if err := c.get(ctx, apiV3+"/search/jql", params, &resp); err != nil {
			return nil, fmt.Errorf("search issues: %w", err)
		}
		for i := range resp.Issues {
			issues = append(issues, resp.Issues[i].toDomain())
		}
		if resp.IsLast || resp.NextPageToken == "" || len(resp.Issues) == 0 {
			break
		}
		token = resp.NextPageToken
	}
	if len(issues) > limit {
		issues = issues[:limit]
	}
	return issues, nil
}

// GetIssue fetches one issue.
func (c *Client) GetIssue(ctx context.Context, key domain.IssueKey) (*domain.Issue, error) {
	params := url.Values{}
	params.Set("fields", strings.Join(issueFields, ","))
	var resp issueJSON
	if err := c.get(ctx, issuePath(apiV3, key), params, &resp); err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}
	return resp.toDomain(), nil
}

// UpdateIssue sends field values under "fields" and label edits under "update".
func (c *Client) UpdateIssue(ctx context.Context, key domain.IssueKey, u domain.IssueUpdate) error {
	if u.IsEmpty() {
		return domain.ErrNoFieldsToUpdate
	}
	if err := c.put(ctx, issuePath(apiV3, key), updatePayload(u)); err != nil {
		return fmt.Errorf("update issue %s: %w", key, err)
	}
	return nil
}

func updatePayload(u domain.IssueUpdate) map[string]any {
	fields := map[string]any{}
	if u.Summary != nil {
		fields["summary"] = *u.Summary
	}
	if u.Description != nil {
		fields["description"] = u.Description
	}
	if u.Priority != nil {
		fields["priority"] = map[string]string{"name": *u.Priority}
	}
	if u.AssigneeID != nil {
		if *u.AssigneeID == "" {
			fields["assignee"] = nil
		} else {
			fields["assignee"] = map[string]string{"accountId": *u.AssigneeID}
		}
	}
	if u.SetLabels {
		labels := u.Labels
		if labels == nil {
			labels = []string{}
		}
		fields["labels"] = labels
	}

	var labelOps []map[string]string
	for _, l := range u.AddLabels {
		labelOps = append(labelOps, map[string]string{"add": l})
	}
	for _, l := range u.RemoveLabels {
		labelOps = append(labelOps, map[string]string{"remove": l})
	}

	payload := map[string]any{}
	if len(fields) > 0 {
		payload["fields"] = fields
	}
	if len(labelOps) > 0 {
		payload["update"] = map[string]any{"labels": labelOps}
	}
	return payload
}

// Transitions lists transitions available for an issue.
func (c *Client) Transitions(ctx context.Context, key domain.IssueKey) ([]domain.Transition, error) {
	var resp transitionsResponse
	if err := c.get(ctx, issuePath(apiV3, key, "transitions"), nil, &resp); err != nil {
		return nil, fmt.Errorf("get transitions %s: %w", key, err)
	}
	out := make([]domain.Transition, 0, len(resp.Transitions))
	for _, t := range resp.Transitions {
		out = append(out, domain.Transition{
			ID:        t.ID,
			Name:      t.Name,
			ToStatus:  t.To.Name,
			HasScreen: t.HasScreen,
		})
	}
	return out, nil
}

// Transition performs a transition with an optional resolution and comment.
func (c *Client) Transition(ctx context.Context, req domain.TransitionRequest) error {
	payload := map[string]any{
		"transition": map[string]string{"id": req.TransitionID},
	}
	if req.Resolution != "" {
		payload["fields"] = map[string]any{
			"resolution": map[string]string{"name": req.Resolution},
		}
	}
	if !req.Comment.IsEmpty() {
		payload["update"] = map[string]any{
			"comment": []any{
				map[string]any{"add": map[string]any{"body": req.Comment}},
			},
		}
	}
	if err := c.post(ctx, issuePath(apiV3, req.Key, "transitions"), payload, nil); err != nil {
		return fmt.Errorf("transition %s: %w", req.Key, err)
	}
	return nil
}

// BulkTransitions returns the transitions available to every given issue.
// Issues in different workflows come back as separate groups; only the
// transitions present in all groups are returned.
func (c *Client) BulkTransitions(ctx context.Context, keys []domain.IssueKey) ([]domain.Transition, error) {
	if len(keys) == 0 {
		return nil, domain.ErrNoIssuesSelected
	}
	params := url.Values{}
	params.Set("issueIdsOrKeys", strings.Join(domain.KeyStrings(keys), ","))

	var resp bulkTransitionsResponse
	if err := c.get(ctx, apiV3+"/bulk/issues/transition", params, &resp); err != nil {
		return nil, fmt.Errorf("get bulk transitions: %w", err)
	}

	var common []domain.Transition
	for gi, group := range resp.AvailableTransitions {
		var current []domain.Transition
		for _, t := range group.Transitions {
			if !t.IsAvailable {
				continue
			}
			current = append(current, domain.Transition{
				ID:       t.TransitionID.String(),
				Name:     t.TransitionName,
				ToStatus: t.To.StatusName,
			})
		}
		if gi == 0 {
			common = current
			continue
		}
		common = intersectTransitions(common, current)
	}
	return common, nil
}

func intersectTransitions(a, b []domain.Transition) []domain.Transition {
	ids := make(map[string]bool, len(b))
	for _, t := range b {
		ids[t.ID] = true
	}
	var out []domain.Transition
	for _, t := range a {
		if ids[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// BulkTransition submits a bulk transition and returns the queued task.
func (c *Client) BulkTransition(ctx context.Context, req domain.BulkTransitionRequest) (*domain.BulkTask, error) {
	if len(req.Keys) == 0 {
		return nil, domain.ErrNoIssuesSelected
	}
	payload := map[string]any{
		"bulkTransitionInputs": []any{
			map[string]any{
				"selectedIssueIdsOrKeys": domain.KeyStrings(req.Keys),
				"transitionId":           req.TransitionID,
			},
		},
		"sendBulkNotification": req.Notify,
	}
	var resp bulkSubmitResponse
	if err := c.post(ctx, apiV3+"/bulk/issues/transition", payload, &resp); err != nil {
		return nil, fmt.Errorf("submit bulk transition: %w", err)
	}
	return &domain.BulkTask{ID: resp.TaskID, Status: domain.BulkEnqueued}, nil
}

// BulkTask returns the progress of a bulk operation.
func (c *Client) BulkTask(ctx context.Context, taskID string) (*domain.BulkTask, error) {
	var resp bulkQueueResponse
	if err := c.get(ctx, apiV3+"/bulk/queue/"+url.PathEscape(taskID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get bulk task %s: %w", taskID, err)
	}
	task := &domain.BulkTask{
		ID:              resp.TaskID,
		Status:          domain.BulkTaskStatus(resp.Status),
		ProgressPercent: resp.ProgressPercent,
	}
	if task.ID == "" {
		task.ID = taskID
	}
	for id := range resp.FailedAccessibleIssues {
		task.FailedKeys = append(task.FailedKeys, id)
	}
	sort.Strings(task.FailedKeys)
	return task, nil
}

// Resolutions lists resolution values.
func (c *Client) Resolutions(ctx context.Context) ([]domain.Resolution, error) {
	var resp []namedJSON
	if err := c.get(ctx, apiV3+"/resolution", nil, &resp); err != nil {
		return nil, fmt.Errorf("get resolutions: %w", err)
	}
	out := make([]domain.Resolution, 0, len(resp))
	for _, r := range resp {
		out = append(out, domain.Resolution{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out, nil
}

// Priorities lists priority values.
func (c *Client) Priorities(ctx context.Context) ([]domain.Priority, error) {
	var resp []namedJSON
	if err := c.get(ctx, apiV3+"/priority", nil, &resp); err != nil {
		return nil, fmt.Errorf("get priorities: %w", err)
	}
	out := make([]domain.Priority, 0, len(resp))
	for _, p := range resp {
		out = append(out, domain.Priority{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// AssignableUsers searches users that can be assigned to key.
func (c *Client) AssignableUsers(ctx context.Context, key domain.IssueKey, query string) ([]domain.User, error) {
	params := url.Values{}
	params.Set("issueKey", string(key))
	if query != "" {
		params.Set("query", query)
	}
	params.Set("maxResults", strconv.Itoa(maxPageSize))
	var resp []userJSON
	if err := c.get(ctx, apiV3+"/user/assignable/search", params, &resp); err != nil {
		return nil, fmt.Errorf("search assignable users: %w", err)
	}
	out := make([]domain.User, 0, len(resp))
	for i := range resp {
		out = append(out, *resp[i].toDomain())
	}
	return out, nil
}

// Myself returns the authenticated user.
func (c *Client) Myself(ctx context.Context) (*domain.User, error) {
	var resp userJSON
	if err := c.get(ctx, apiV3+"/myself", nil, &resp); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return resp.toDomain(), nil
}

// Comments lists all comments on an issue, oldest first.
func (c *Client) Comments(ctx context.Context, key domain.IssueKey) ([]domain.Comment, error) {
	var out []domain.Comment
	startAt := 0
	for {
		params := url.Values{}
		params.Set("startAt", strconv.Itoa(startAt))
		params.Set("maxResults", strconv.Itoa(maxPageSize))
		var resp commentsResponse
		if err := c.get(ctx, issuePath(apiV3, key, "comment"), params, &resp); err != nil {
			return nil, fmt.Errorf("get comments %s: %w", key, err)
		}
		for i := range resp.Comments {
			out = append(out, resp.Comments[i].toDomain())
		}
		startAt += len(resp.Comments)
		if len(resp.Comments) == 0 || startAt >= resp.Total {
			break
		}
	}
	return out, nil
}

// AddComment posts an ADF comment.
func (c *Client) AddComment(ctx context.Context, key domain.IssueKey, body *domain.Document) (*domain.Comment, error) {
	var resp commentJSON
	if err := c.post(ctx, issuePath(apiV3, key, "comment"), map[string]any{"body": body}, &resp); err != nil {
		return nil, fmt.Errorf("add comment %s: %w", key, err)
	}
	comment := resp.toDomain()
	return &comment, nil
}

// DeleteComment deletes a comment. A 404 is reported as ErrCommentNotFound.
func (c *Client) DeleteComment(ctx context.Context, key domain.IssueKey, commentID string) error {
	if err := c.delete(ctx, issuePath(apiV3, key, "comment", commentID), nil); err != nil {
		if errors.Is(err, domain.ErrIssueNotFound) {
			return fmt.Errorf("delete comment %s on %s: %w", commentID, key, domain.ErrCommentNotFound)
		}
		return fmt.Errorf("delete comment %s on %s: %w", commentID, key, err)
	}
	return nil
}

// Worklogs lists worklogs through API v2, whose comments are plain strings.
func (c *Client) Worklogs(ctx context.Context, key domain.IssueKey) ([]domain.Worklog, error) {
	var resp worklogsResponse
	if err := c.get(ctx, issuePath(apiV2, key, "worklog"), nil, &resp); err != nil {
		return nil, fmt.Errorf("get worklogs %s: %w", key, err)
	}
	out := make([]domain.Worklog, 0, len(resp.Worklogs))
	for i := range resp.Worklogs {
		out = append(out, resp.Worklogs[i].toDomain())
	}
	return out, nil
}

// AddWorklog logs time through API v2.
func (c *Client) AddWorklog(ctx context.Context, w domain.NewWorklog) (*domain.Worklog, error) {
	payload := map[string]any{
		"timeSpentSeconds": w.TimeSpentSeconds,
		"started":          w.Started.Format(domain.JiraTimeLayout),
	}
	if w.Comment != "" {
		payload["comment"] = w.Comment
	}
	var resp worklogJSON
	if err := c.post(ctx, issuePath(apiV2, w.Key, "worklog"), payload, &resp); err != nil {
		return nil, fmt.Errorf("add worklog %s: %w", w.Key, err)
	}
	wl := resp.toDomain()
	return &wl, nil
}

// Watchers lists who watches an issue.
func (c *Client) Watchers(ctx context.Context, key domain.IssueKey) (*domain.Watchers, error) {
	var resp watchersResponse
	if err := c.get(ctx, issuePath(apiV3, key, "watchers"), nil, &resp); err != nil {
		return nil, fmt.Errorf("get watchers %s: %w", key, err)
	}
	w := &domain.Watchers{Count: resp.WatchCount, IsWatching: resp.IsWatching}
	for i := range resp.Watchers {
		w.Users = append(w.Users, *resp.Watchers[i].toDomain())
	}
	return w, nil
}

// AddWatcher adds accountID to the watchers. The body is a bare JSON string.
func (c *Client) AddWatcher(ctx context.Context, key domain.IssueKey, accountID string) error {
	if err := c.post(ctx, issuePath(apiV3, key, "watchers"), accountID, nil); err != nil {
		return fmt.Errorf("add watcher %s: %w", key, err)
	}
	return nil
}

// RemoveWatcher removes accountID from the watchers.
func (c *Client) RemoveWatcher(ctx context.Context, key domain.IssueKey, accountID string) error {
	params := url.Values{}
	params.Set("accountId", accountID)
	if err := c.delete(ctx, issuePath(apiV3, key, "watchers"), params); err != nil {
		return fmt.Errorf("remove watcher %s: %w", key, err)
	}
	return nil
}

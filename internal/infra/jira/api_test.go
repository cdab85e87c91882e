package jira

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/jiractl/internal/domain"
)

func TestClient_Search(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/search/jql", 200, `{
		"issues": [{
			"id": "10001",
			"key": "ABC-1",
			"fields": {
				"summary": "Fix login",
				"status": {"id": "3", "name": "In Progress", "statusCategory": {"key": "indeterminate"}},
				"issuetype": {"name": "Bug"},
				"priority": {"name": "High"},
				"assignee": {"accountId": "u1", "displayName": "Ada"},
				"labels": ["auth"],
				"created": "2024-01-02T03:04:05.000+0000",
				"description": {"type": "doc", "version": 1, "content": [{"type": "paragraph", "content": [{"type": "text", "text": "Broken"}]}]}
			}
		}],
		"isLast": true
	}`)
	c := newTestClient(t, f)

	issues, err := c.Search(t.Context(), domain.SearchQuery{JQL: "project = ABC", MaxResults: 10})
	require.NoError(t, err)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, domain.IssueKey("ABC-1"), issue.Key)
	assert.Equal(t, "Fix login", issue.Summary)
	assert.Equal(t, "In Progress", issue.Status.Name)
	assert.Equal(t, domain.CategoryInProgress, issue.Status.Category)
	assert.Equal(t, "Bug", issue.Type)
	assert.Equal(t, "High", issue.Priority)
	assert.Equal(t, "Ada", issue.Assignee.Name())
	assert.Nil(t, issue.Reporter)
	assert.Equal(t, []string{"auth"}, issue.Labels)
	assert.Equal(t, 2024, issue.Created.Year())
	assert.Equal(t, "Broken", issue.Description.PlainText())

	q, err := url.ParseQuery(f.last(t).Query)
	require.NoError(t, err)
	assert.Equal(t, "project = ABC", q.Get("jql"))
	assert.Equal(t, "10", q.Get("maxResults"))
	assert.Contains(t, q.Get("fields"), "summary")
	assert.Empty(t, q.Get("nextPageToken"))
}

func TestClient_Search_FollowsPageToken(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/search/jql", 200, `{"issues":[{"key":"ABC-1","fields":{"summary":"one"}}],"nextPageToken":"next"}`)
	c := newTestClient(t, f)

	issues, err := c.Search(t.Context(), domain.SearchQuery{JQL: "x", MaxResults: 3})
	require.NoError(t, err)
	assert.Len(t, issues, 3)
	assert.Equal(t, 3, f.count())

	q, _ := url.ParseQuery(f.last(t).Query)
	assert.Equal(t, "next", q.Get("nextPageToken"))
	assert.Equal(t, "1", q.Get("maxResults"))
}

func TestClient_UpdateIssue(t *testing.T) {
	f := newFakeJira(t)
	c := newTestClient(t, f)

	summary := "New title"
	assignee := "acc-1"
	priority := "Low"
	err := c.UpdateIssue(t.Context(), "ABC-1", domain.IssueUpdate{
		Summary:      &summary,
		AssigneeID:   &assignee,
		Priority:     &priority,
		AddLabels:    []string{"ui"},
		RemoveLabels: []string{"old"},
	})
	require.NoError(t, err)

	req := f.last(t)
	assert.Equal(t, "PUT", req.Method)
	assert.Equal(t, "/rest/api/3/issue/ABC-1", req.Path)
	assert.JSONEq(t, `{
		"fields": {
			"summary": "New title",
			"assignee": {"accountId": "acc-1"},
			"priority": {"name": "Low"}
		},
		"update": {"labels": [{"add": "ui"}, {"remove": "old"}]}
	}`, req.Body)
}

func TestClient_UpdateIssue_UnassignAndSetLabels(t *testing.T) {
	f := newFakeJira(t)
	c := newTestClient(t, f)

	none := ""
	err := c.UpdateIssue(t.Context(), "ABC-1", domain.IssueUpdate{AssigneeID: &none, SetLabels: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields": {"assignee": null, "labels": []}}`, f.last(t).Body)
}

func TestClient_UpdateIssue_Empty(t *testing.T) {
	f := newFakeJira(t)
	c := newTestClient(t, f)

	err := c.UpdateIssue(t.Context(), "ABC-1", domain.IssueUpdate{})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	assert.Equal(t, 0, f.count())
}

func TestClient_Transitions(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/issue/ABC-1/transitions", 200, `{"transitions":[
		{"id":"11","name":"Start","to":{"name":"In Progress"}},
		{"id":"31","name":"Done","to":{"name":"Done"},"hasScreen":true}
	]}`)
	c := newTestClient(t, f)

	got, err := c.Transitions(t.Context(), "ABC-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{
		{ID: "11", Name: "Start", ToStatus: "In Progress"},
		{ID: "31", Name: "Done", ToStatus: "Done", HasScreen: true},
	}, got)
}

func TestClient_Transition(t *testing.T) {
	f := newFakeJira(t)
	c := newTestClient(t, f)

	err := c.Transition(t.Context(), domain.TransitionRequest{
		Key:          "ABC-1",
		TransitionID: "31",
		Resolution:   "Fixed",
		Comment:      domain.NewDocument("Shipped"),
	})
	require.NoError(t, err)

	req := f.last(t)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/rest/api/3/issue/ABC-1/transitions", req.Path)
	assert.JSONEq(t, `{
		"transition": {"id": "31"},
		"fields": {"resolution": {"name": "Fixed"}},
		"update": {"comment": [{"add": {"body": {
			"type": "doc", "version": 1,
			"content": [{"type": "paragraph", "content": [{"type": "text", "text": "Shipped"}]}]
		}}}]}
	}`, req.Body)
}

func TestClient_Transition_Minimal(t *testing.T) {
	f := newFakeJira(t)
	c := newTestClient(t, f)

	require.NoError(t, c.Transition(t.Context(), domain.TransitionRequest{Key: "ABC-1", TransitionID: "11"}))
	assert.JSONEq(t, `{"transition": {"id": "11"}}`, f.last(t).Body)
}

func TestClient_BulkTransitions(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/bulk/issues/transition", 200, `{"availableTransitions":[
		{"issues":["ABC-1"],"transitions":[
			{"transitionId":31,"transitionName":"Done","to":{"statusName":"Done"},"isAvailable":true},
			{"transitionId":11,"transitionName":"Start","to":{"statusName":"In Progress"},"isAvailable":true}
		]},
		{"issues":["ABC-2"],"transitions":[
			{"transitionId":31,"transitionName":"Done","to":{"statusName":"Done"},"isAvailable":true},
			{"transitionId":11,"transitionName":"Start","to":{"statusName":"In Progress"},"isAvailable":false}
		]}
	]}`)
	c := newTestClient(t, f)

	got, err := c.BulkTransitions(t.Context(), []domain.IssueKey{"ABC-1", "ABC-2"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{{ID: "31", Name: "Done", ToStatus: "Done"}}, got)

	q, _ := url.ParseQuery(f.last(t).Query)
	assert.Equal(t, "ABC-1,ABC-2", q.Get("issueIdsOrKeys"))
}

func TestClient_BulkTransition(t *testing.T) {
	f := newFakeJira(t)
	f.on("POST", "/rest/api/3/bulk/issues/transition", 201, `{"taskId":"10641"}`)
	c := newTestClient(t, f)

	task, err := c.BulkTransition(t.Context(), domain.BulkTransitionRequest{
		TransitionID: "31",
		Keys:         []domain.IssueKey{"ABC-1", "ABC-2"},
		Notify:       false,
	})
	require.NoError(t, err)
	assert.Equal(t, "10641", task.ID)
	assert.Equal(t, domain.BulkEnqueued, task.Status)
	assert.JSONEq(t, `{
		"bulkTransitionInputs": [{"selectedIssueIdsOrKeys": ["ABC-1", "ABC-2"], "transitionId": "31"}],
		"sendBulkNotification": false
	}`, f.last(t).Body)
}

func TestClient_BulkTransition_NoKeys(t *testing.T) {
	f := newFakeJira(t)
	c := newTestClient(t, f)

	_, err := c.BulkTransition(t.Context(), domain.BulkTransitionRequest{TransitionID: "31"})
	assert.ErrorIs(t, err, domain.ErrNoIssuesSelected)
	_, err = c.BulkTransitions(t.Context(), nil)
	assert.ErrorIs(t, err, domain.ErrNoIssuesSelected)
	assert.Equal(t, 0, f.count())
}

func TestClient_BulkTask(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/bulk/queue/10641", 200, `{
		"taskId":"10641","status":"COMPLETE","progressPercent":100,
		"failedAccessibleIssues":{"10002":["Field required"],"10001":["Denied"]}
	}`)
	c := newTestClient(t, f)

	task, err := c.BulkTask(t.Context(), "10641")
	require.NoError(t, err)
	assert.Equal(t, domain.BulkComplete, task.Status)
	assert.Equal(t, 100, task.ProgressPercent)
	assert.Equal(t, []string{"10001", "10002"}, task.FailedKeys)
}

func TestClient_Worklog(t *testing.T) {
	f := newFakeJira(t)
	f.on("POST", "/rest/api/2/issue/ABC-1/worklog", 201, `{"id":"900","timeSpent":"1h 30m","timeSpentSeconds":5400,"comment":"Fix login","started":"2024-05-06T09:00:00.000+0200"}`)
	c := newTestClient(t, f)

	started := time.Date(2024, 5, 6, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	wl, err := c.AddWorklog(t.Context(), domain.NewWorklog{
		Key:              "ABC-1",
		TimeSpentSeconds: 5400,
		Started:          started,
		Comment:          "Fix login",
	})
	require.NoError(t, err)
	assert.Equal(t, "900", wl.ID)
	assert.Equal(t, "1h 30m", wl.TimeSpent)
	assert.Equal(t, "Fix login", wl.Comment)

	assert.JSONEq(t, `{
		"timeSpentSeconds": 5400,
		"started": "2024-05-06T09:00:00.000+0200",
		"comment": "Fix login"
	}`, f.last(t).Body)
}

func TestClient_Worklogs(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/2/issue/ABC-1/worklog", 200, `{"worklogs":[
		{"id":"1","timeSpentSeconds":3600,"author":{"accountId":"u1","displayName":"Ada"}}
	],"total":1}`)
	c := newTestClient(t, f)

	got, err := c.Worklogs(t.Context(), "ABC-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1h", got[0].TimeSpent)
	assert.Equal(t, "Ada", got[0].Author.Name())
}

func TestClient_Comments(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/issue/ABC-1/comment", 200, `{"comments":[
		{"id":"100","author":{"accountId":"u1","displayName":"Ada"},"body":{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"LGTM"}]}]}}
	],"startAt":0,"maxResults":100,"total":1}`)
	f.on("POST", "/rest/api/3/issue/ABC-1/comment", 201, `{"id":"101","body":{"type":"doc","version":1,"content":[]}}`)
	c := newTestClient(t, f)

	comments, err := c.Comments(t.Context(), "ABC-1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "LGTM", comments[0].Body.PlainText())

	created, err := c.AddComment(t.Context(), "ABC-1", domain.NewDocument("hi"))
	require.NoError(t, err)
	assert.Equal(t, "101", created.ID)
	assert.JSONEq(t, `{"body":{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]}]}}`, f.last(t).Body)
}

func TestClient_DeleteComment(t *testing.T) {
	f := newFakeJira(t)
	c := newTestClient(t, f)

	require.NoError(t, c.DeleteComment(t.Context(), "ABC-1", "100"))
	req := f.last(t)
	assert.Equal(t, "DELETE", req.Method)
	assert.Equal(t, "/rest/api/3/issue/ABC-1/comment/100", req.Path)

	f.on("DELETE", "/rest/api/3/issue/ABC-1/comment/999", 404, `{"errorMessages":["Can not find a comment for the id: 999."]}`)
	err := c.DeleteComment(t.Context(), "ABC-1", "999")
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestClient_Watchers(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/issue/ABC-1/watchers", 200, `{"isWatching":true,"watchCount":2,"watchers":[{"accountId":"u1"},{"accountId":"u2"}]}`)
	c := newTestClient(t, f)

	w, err := c.Watchers(t.Context(), "ABC-1")
	require.NoError(t, err)
	assert.True(t, w.IsWatching)
	assert.Equal(t, 2, w.Count)
	assert.True(t, w.Contains("u2"))

	require.NoError(t, c.AddWatcher(t.Context(), "ABC-1", "u3"))
	req := f.last(t)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, `"u3"`, req.Body)

	require.NoError(t, c.RemoveWatcher(t.Context(), "ABC-1", "u3"))
	req = f.last(t)
	assert.Equal(t, "DELETE", req.Method)
	assert.Equal(t, "accountId=u3", req.Query)
}

func TestClient_AssignableUsers(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/user/assignable/search", 200, `[{"accountId":"u1","displayName":"Ada","active":true}]`)
	c := newTestClient(t, f)

	users, err := c.AssignableUsers(t.Context(), "ABC-1", "ad")
	require.NoError(t, err)
	assert.Equal(t, []domain.User{{AccountID: "u1", DisplayName: "Ada", Active: true}}, users)

	q, _ := url.ParseQuery(f.last(t).Query)
	assert.Equal(t, "ABC-1", q.Get("issueKey"))
	assert.Equal(t, "ad", q.Get("query"))
}

func TestClient_Priorities(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/priority", 200, `[{"id":"1","name":"Highest"},{"id":"3","name":"Medium"}]`)
	c := newTestClient(t, f)

	got, err := c.Priorities(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []domain.Priority{{ID: "1", Name: "Highest"}, {ID: "3", Name: "Medium"}}, got)
}

package jira

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/jiractl/internal/domain"
)

type recordedRequest struct {
	Header http.Header
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeJira is an httptest server that records requests and serves canned responses.
type fakeJira struct {
	server    *httptest.Server
	responses map[string]fakeResponse
	requests  []recordedRequest
	mu        sync.Mutex
}

type fakeResponse struct {
	body   string
	status int
}

func newFakeJira(t *testing.T) *fakeJira {
	t.Helper()
	f := &fakeJira{responses: map[string]fakeResponse{}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		resp, ok := f.responses[r.Method+" "+r.URL.Path]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if resp.status == 0 {
			resp.status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeJira) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = fakeResponse{status: status, body: body}
}

func (f *fakeJira) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *fakeJira) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t *testing.T, f *fakeJira) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{
		BaseURL:   f.server.URL + "/",
		Email:     "dev@example.com",
		Token:     "secret",
		RateLimit: 1000,
		RateBurst: 100,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient(ClientConfig{BaseURL: "https://example.atlassian.net"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = NewClient(ClientConfig{BaseURL: "https://jira.local", Token: "pat", AuthType: domain.AuthBearer})
	assert.NoError(t, err)
}

func TestClient_BasicAuth(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/myself", 200, `{"accountId":"abc","displayName":"Dev"}`)
	c := newTestClient(t, f)

	user, err := c.Myself(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "abc", user.AccountID)
	assert.Equal(t, "Dev", user.DisplayName)

	req := f.last(t)
	// base64("dev@example.com:secret")
	assert.Equal(t, "Basic ZGV2QGV4YW1wbGUuY29tOnNlY3JldA==", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestClient_BearerAuth(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/myself", 200, `{"name":"dev","displayName":"Dev"}`)
	c, err := NewClient(ClientConfig{BaseURL: f.server.URL, Token: "pat", AuthType: domain.AuthBearer})
	require.NoError(t, err)

	user, err := c.Myself(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "dev", user.AccountID, "falls back to name on Data Center")
	assert.Equal(t, "Bearer pat", f.last(t).Header.Get("Authorization"))
}

func TestClient_APIError(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/issue/ABC-1", 404, `{"errorMessages":["Issue does not exist or you do not have permission to see it."],"errors":{}}`)
	c := newTestClient(t, f)

	_, err := c.GetIssue(t.Context(), "ABC-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIssueNotFound)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, []string{"Issue does not exist or you do not have permission to see it."}, apiErr.Messages)
	assert.Equal(t, 1, f.count(), "4xx is not retried")
}

func TestClient_FieldErrors(t *testing.T) {
	f := newFakeJira(t)
	f.on("PUT", "/rest/api/3/issue/ABC-1", 400, `{"errorMessages":[],"errors":{"summary":"Summary is required."}}`)
	c := newTestClient(t, f)

	summary := ""
	err := c.UpdateIssue(t.Context(), "ABC-1", domain.IssueUpdate{Summary: &summary})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary: Summary is required.")
	assert.NotErrorIs(t, err, domain.ErrIssueNotFound)
}

func TestClient_Unauthorized(t *testing.T) {
	f := newFakeJira(t)
	f.on("GET", "/rest/api/3/myself", 401, `<html>Unauthorized</html>`)
	c := newTestClient(t, f)

	_, err := c.Myself(t.Context())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[{"id":"1","name":"Done"}]`)
	}))
	defer server.Close()

	c, err := NewClient(ClientConfig{BaseURL: server.URL, Email: "e", Token: "t", RateLimit: 1000})
	require.NoError(t, err)

	res, err := c.Resolutions(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []domain.Resolution{{ID: "1", Name: "Done"}}, res)
	assert.Equal(t, 3, calls)
}

func TestClient_DoesNotRetryPostOnServerError(t *testing.T) {
	// Setup
	f := newFakeJira(t)
	f.on("POST", "/rest/api/3/issue/ABC-1/comment", http.StatusGatewayTimeout, ``)
	c := newTestClient(t, f)

	// Execute
	_, err := c.AddComment(t.Context(), "ABC-1", domain.NewDocument("Looks good"))

	// Assert
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusGatewayTimeout, apiErr.StatusCode)
	assert.Equal(t, 1, f.count(), "a POST may have been committed and is sent once")
}

func TestClient_RetriesThrottledPost(t *testing.T) {
	var calls int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"id":"101"}`)
	}))
	defer server.Close()

	c, err := NewClient(ClientConfig{BaseURL: server.URL, Email: "e", Token: "t", RateLimit: 1000})
	require.NoError(t, err)

	comment, err := c.AddComment(t.Context(), "ABC-1", domain.NewDocument("Looks good"))
	require.NoError(t, err)
	assert.Equal(t, "101", comment.ID)
	assert.Equal(t, 2, calls)
}

func TestAPIError_Retryable(t *testing.T) {
	tests := []struct {
		method string
		status int
		want   bool
	}{
		{http.MethodGet, http.StatusServiceUnavailable, true},
		{http.MethodPut, http.StatusBadGateway, true},
		{http.MethodDelete, http.StatusInternalServerError, true},
		{http.MethodPost, http.StatusGatewayTimeout, false},
		{http.MethodPost, http.StatusTooManyRequests, true},
		{http.MethodGet, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		e := &APIError{Method: tt.method, StatusCode: tt.status}
		assert.Equal(t, tt.want, e.Retryable(), "%s %d", tt.method, tt.status)
	}
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c, err := NewClient(ClientConfig{BaseURL: server.URL, Email: "e", Token: "t", MaxRetries: 1, RateLimit: 1000})
	require.NoError(t, err)

	_, err = c.Priorities(t.Context())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, 2, calls)
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"error messages", `{"errorMessages":["a","b"]}`, []string{"a", "b"}},
		{"field errors", `{"errors":{"assignee":"bad"}}`, []string{"assignee: bad"}},
		{"message", `{"message":"Client must be authenticated"}`, []string{"Client must be authenticated"}},
		{"plain text", `rate limited`, []string{"rate limited"}},
		{"empty", ``, []string{"Bad Request"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.want, e.Messages)
		})
	}
}

func TestParseJiraTime(t *testing.T) {
	got := parseJiraTime("2024-03-01T10:20:30.000+0100")
	assert.Equal(t, time.Date(2024, 3, 1, 9, 20, 30, 0, time.UTC), got.UTC())
	assert.True(t, parseJiraTime("").IsZero())
	assert.True(t, parseJiraTime("yesterday").IsZero())
}

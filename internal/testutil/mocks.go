// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/jiractl/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime  time.Time
	SleepErr error
	Slept    []time.Duration
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Sleep records d and advances NowTime without blocking.
func (m *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Slept = append(m.Slept, d)
	m.NowTime = m.NowTime.Add(d)
	return m.SleepErr
}

// UpdateCall records an UpdateIssue call.
type UpdateCall struct {
	Key    domain.IssueKey
	Update domain.IssueUpdate
}

// WatcherCall records an AddWatcher or RemoveWatcher call.
type WatcherCall struct {
	Key       domain.IssueKey
	AccountID string
}

// CommentCall records an AddComment or DeleteComment call.
type CommentCall struct {
	Body      *domain.Document
	Key       domain.IssueKey
	CommentID string
}

// MockIssueTracker is a test double for domain.IssueTracker.
// Canned responses are set through the exported fields; calls are recorded.
// Fields are ordered to minimize memory padding.
type MockIssueTracker struct {
	Issues            map[domain.IssueKey]*domain.Issue
	TransitionsByKey  map[domain.IssueKey][]domain.Transition
	CommentsByKey     map[domain.IssueKey][]domain.Comment
	WorklogsByKey     map[domain.IssueKey][]domain.Worklog
	WatchersByKey     map[domain.IssueKey]*domain.Watchers
	Me                *domain.User
	SearchErr         error
	GetErr            error
	UpdateErr         error
	TransitionsErr    error
	TransitionErr     error
	BulkErr           error
	BulkTaskErr       error
	MetaErr           error
	CommentErr        error
	WorklogErr        error
	WatchErr          error
	MyselfErr         error
	SearchResult      []*domain.Issue
	BulkTransitionSet []domain.Transition
	BulkTasks         []*domain.BulkTask
	ResolutionList    []domain.Resolution
	PriorityList      []domain.Priority
	Users             []domain.User

	SearchQueries      []domain.SearchQuery
	GetCalls           []domain.IssueKey
	Updates            []UpdateCall
	TransitionRequests []domain.TransitionRequest
	BulkKeysQueried    [][]domain.IssueKey
	BulkRequests       []domain.BulkTransitionRequest
	AddedComments      []CommentCall
	DeletedComments    []CommentCall
	AddedWorklogs      []domain.NewWorklog
	AddedWatchers      []WatcherCall
	RemovedWatchers    []WatcherCall
	UserQueries        []string
	BulkTaskPolls      int
	nextID             int
}

// NewMockIssueTracker creates a MockIssueTracker with initialized maps.
func NewMockIssueTracker() *MockIssueTracker {
	return &MockIssueTracker{
		Issues:           make(map[domain.IssueKey]*domain.Issue),
		TransitionsByKey: make(map[domain.IssueKey][]domain.Transition),
		CommentsByKey:    make(map[domain.IssueKey][]domain.Comment),
		WorklogsByKey:    make(map[domain.IssueKey][]domain.Worklog),
		WatchersByKey:    make(map[domain.IssueKey]*domain.Watchers),
		Me:               &domain.User{AccountID: "me-1", DisplayName: "Me", Active: true},
		nextID:           100,
	}
}

// Ensure MockIssueTracker implements domain.IssueTracker interface.
var _ domain.IssueTracker = (*MockIssueTracker)(nil)

// AddIssue registers an issue and includes it in search results.
func (m *MockIssueTracker) AddIssue(issue *domain.Issue) {
	m.Issues[issue.Key] = issue
	m.SearchResult = append(m.SearchResult, issue)
}

func (m *MockIssueTracker) id() string {
	m.nextID++
	return fmt.Sprintf("%d", m.nextID)
}

// Search returns SearchResult.
func (m *MockIssueTracker) Search(_ context.Context, q domain.SearchQuery) ([]*domain.Issue, error) {
	m.SearchQueries = append(m.SearchQueries, q)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResult, nil
}

// GetIssue returns a registered issue or ErrIssueNotFound.
func (m *MockIssueTracker) GetIssue(_ context.Context, key domain.IssueKey) (*domain.Issue, error) {
	m.GetCalls = append(m.GetCalls, key)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	issue, ok := m.Issues[key]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	return issue, nil
}

// UpdateIssue records the update.
func (m *MockIssueTracker) UpdateIssue(_ context.Context, key domain.IssueKey, update domain.IssueUpdate) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updates = append(m.Updates, UpdateCall{Key: key, Update: update})
	return nil
}

// Transitions returns TransitionsByKey[key].
func (m *MockIssueTracker) Transitions(_ context.Context, key domain.IssueKey) ([]domain.Transition, error) {
	if m.TransitionsErr != nil {
		return nil, m.TransitionsErr
	}
	return m.TransitionsByKey[key], nil
}

// Transition records the request.
func (m *MockIssueTracker) Transition(_ context.Context, req domain.TransitionRequest) error {
	if m.TransitionErr != nil {
		return m.TransitionErr
	}
	m.TransitionRequests = append(m.TransitionRequests, req)
	return nil
}

// BulkTransitions returns BulkTransitionSet.
func (m *MockIssueTracker) BulkTransitions(_ context.Context, keys []domain.IssueKey) ([]domain.Transition, error) {
	m.BulkKeysQueried = append(m.BulkKeysQueried, keys)
	if m.TransitionsErr != nil {
		return nil, m.TransitionsErr
	}
	return m.BulkTransitionSet, nil
}

// BulkTransition records the request and returns an enqueued task.
func (m *MockIssueTracker) BulkTransition(_ context.Context, req domain.BulkTransitionRequest) (*domain.BulkTask, error) {
	if m.BulkErr != nil {
		return nil, m.BulkErr
	}
	m.BulkRequests = append(m.BulkRequests, req)
	return &domain.BulkTask{ID: "task-1", Status: domain.BulkEnqueued}, nil
}

// BulkTask returns BulkTasks in order, repeating the last one.
func (m *MockIssueTracker) BulkTask(_ context.Context, taskID string) (*domain.BulkTask, error) {
	if m.BulkTaskErr != nil {
		return nil, m.BulkTaskErr
	}
	if len(m.BulkTasks) == 0 {
		return &domain.BulkTask{ID: taskID, Status: domain.BulkComplete, ProgressPercent: 100}, nil
	}
	i := min(m.BulkTaskPolls, len(m.BulkTasks)-1)
	m.BulkTaskPolls++
	return m.BulkTasks[i], nil
}

// Resolutions returns ResolutionList.
func (m *MockIssueTracker) Resolutions(context.Context) ([]domain.Resolution, error) {
	if m.MetaErr != nil {
		return nil, m.MetaErr
	}
	return m.ResolutionList, nil
}

// Priorities returns PriorityList.
func (m *MockIssueTracker) Priorities(context.Context) ([]domain.Priority, error) {
	if m.MetaErr != nil {
		return nil, m.MetaErr
	}
	return m.PriorityList, nil
}

// AssignableUsers returns Users whose display name contains query.
func (m *MockIssueTracker) AssignableUsers(_ context.Context, _ domain.IssueKey, query string) ([]domain.User, error) {
	m.UserQueries = append(m.UserQueries, query)
	if m.MetaErr != nil {
		return nil, m.MetaErr
	}
	if query == "" {
		return m.Users, nil
	}
	var out []domain.User
	for _, u := range m.Users {
		if strings.Contains(strings.ToLower(u.DisplayName), strings.ToLower(query)) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Myself returns Me.
func (m *MockIssueTracker) Myself(context.Context) (*domain.User, error) {
	if m.MyselfErr != nil {
		return nil, m.MyselfErr
	}
	return m.Me, nil
}

// Comments returns CommentsByKey[key].
func (m *MockIssueTracker) Comments(_ context.Context, key domain.IssueKey) ([]domain.Comment, error) {
	if m.CommentErr != nil {
		return nil, m.CommentErr
	}
	return m.CommentsByKey[key], nil
}

// AddComment records the call and appends the comment.
func (m *MockIssueTracker) AddComment(_ context.Context, key domain.IssueKey, body *domain.Document) (*domain.Comment, error) {
	if m.CommentErr != nil {
		return nil, m.CommentErr
	}
	m.AddedComments = append(m.AddedComments, CommentCall{Key: key, Body: body})
	c := domain.Comment{ID: m.id(), Body: body, Author: m.Me}
	m.CommentsByKey[key] = append(m.CommentsByKey[key], c)
	return &c, nil
}

// DeleteComment records the call and removes the comment.
func (m *MockIssueTracker) DeleteComment(_ context.Context, key domain.IssueKey, commentID string) error {
	if m.CommentErr != nil {
		return m.CommentErr
	}
	m.DeletedComments = append(m.DeletedComments, CommentCall{Key: key, CommentID: commentID})
	m.CommentsByKey[key] = slices.DeleteFunc(m.CommentsByKey[key], func(c domain.Comment) bool {
		return c.ID == commentID
	})
	return nil
}

// Worklogs returns WorklogsByKey[key].
func (m *MockIssueTracker) Worklogs(_ context.Context, key domain.IssueKey) ([]domain.Worklog, error) {
	if m.WorklogErr != nil {
		return nil, m.WorklogErr
	}
	return m.WorklogsByKey[key], nil
}

// AddWorklog records the worklog.
func (m *MockIssueTracker) AddWorklog(_ context.Context, w domain.NewWorklog) (*domain.Worklog, error) {
	if m.WorklogErr != nil {
		return nil, m.WorklogErr
	}
	m.AddedWorklogs = append(m.AddedWorklogs, w)
	wl := domain.Worklog{
		ID:               m.id(),
		Author:           m.Me,
		Started:          w.Started,
		Comment:          w.Comment,
		TimeSpentSeconds: w.TimeSpentSeconds,
		TimeSpent:        domain.FormatWorklogDuration(w.TimeSpentSeconds),
	}
	m.WorklogsByKey[w.Key] = append(m.WorklogsByKey[w.Key], wl)
	return &wl, nil
}

// Watchers returns WatchersByKey[key], or an empty set.
func (m *MockIssueTracker) Watchers(_ context.Context, key domain.IssueKey) (*domain.Watchers, error) {
	if m.WatchErr != nil {
		return nil, m.WatchErr
	}
	if w, ok := m.WatchersByKey[key]; ok {
		return w, nil
	}
	return &domain.Watchers{}, nil
}

// AddWatcher records the call.
func (m *MockIssueTracker) AddWatcher(_ context.Context, key domain.IssueKey, accountID string) error {
	if m.WatchErr != nil {
		return m.WatchErr
	}
	m.AddedWatchers = append(m.AddedWatchers, WatcherCall{Key: key, AccountID: accountID})
	return nil
}

// RemoveWatcher records the call.
func (m *MockIssueTracker) RemoveWatcher(_ context.Context, key domain.IssueKey, accountID string) error {
	if m.WatchErr != nil {
		return m.WatchErr
	}
	m.RemovedWatchers = append(m.RemovedWatchers, WatcherCall{Key: key, AccountID: accountID})
	return nil
}

// MockSummaryCache is a test double for domain.SummaryCache.
type MockSummaryCache struct {
	Summaries map[domain.IssueKey]string
	GetErr    error
	PutErr    error
	Cleared   bool
}

// NewMockSummaryCache creates a new MockSummaryCache with an initialized map.
func NewMockSummaryCache() *MockSummaryCache {
	return &MockSummaryCache{Summaries: make(map[domain.IssueKey]string)}
}

// Ensure MockSummaryCache implements domain.SummaryCache interface.
var _ domain.SummaryCache = (*MockSummaryCache)(nil)

// Get returns the cached summary.
func (m *MockSummaryCache) Get(key domain.IssueKey) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	s, ok := m.Summaries[key]
	return s, ok, nil
}

// Put caches one summary.
func (m *MockSummaryCache) Put(key domain.IssueKey, summary string) error {
	return m.PutAll(map[domain.IssueKey]string{key: summary})
}

// PutAll caches many summaries.
func (m *MockSummaryCache) PutAll(summaries map[domain.IssueKey]string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	for k, v := range summaries {
		m.Summaries[k] = v
	}
	return nil
}

// List returns entries sorted by key.
func (m *MockSummaryCache) List() ([]domain.CachedSummary, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	out := make([]domain.CachedSummary, 0, len(m.Summaries))
	for k, v := range m.Summaries {
		out = append(out, domain.CachedSummary{Key: k, Summary: v})
	}
	slices.SortFunc(out, func(a, b domain.CachedSummary) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})
	return out, nil
}

// Clear removes every entry.
func (m *MockSummaryCache) Clear() error {
	if m.PutErr != nil {
		return m.PutErr
	}
	clear(m.Summaries)
	m.Cleared = true
	return nil
}

// MockBranchReader is a test double for domain.BranchReader.
type MockBranchReader struct {
	Err    error
	Branch string
}

// Ensure MockBranchReader implements domain.BranchReader interface.
var _ domain.BranchReader = (*MockBranchReader)(nil)

// CurrentBranch returns the configured branch or error.
func (m *MockBranchReader) CurrentBranch() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Branch, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitGlobalErr    error
	InitConfig       *domain.Config
	LocalInfo        domain.ConfigInfo
	GlobalInfo       domain.ConfigInfo
	InitGlobalCalled bool
	InitForce        bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		LocalInfo: domain.ConfigInfo{
			Path:   "/test/repo/.jiractl.toml",
			Exists: false,
		},
		GlobalInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/jiractl/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// LocalConfigInfo returns the configured local config info.
func (m *MockConfigManager) LocalConfigInfo() domain.ConfigInfo {
	return m.LocalInfo
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config, force bool) (string, error) {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	m.InitForce = force
	if m.InitGlobalErr != nil {
		return "", m.InitGlobalErr
	}
	return m.GlobalInfo.Path, nil
}

// LogEntry is one recorded log line.
type LogEntry struct {
	Level    string
	Key      domain.IssueKey
	Category string
	Msg      string
}

// MockLogger records log calls.
type MockLogger struct {
	Entries []LogEntry
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) Info(key domain.IssueKey, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{"INFO", key, category, msg})
}

func (m *MockLogger) Debug(key domain.IssueKey, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{"DEBUG", key, category, msg})
}

func (m *MockLogger) Warn(key domain.IssueKey, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{"WARN", key, category, msg})
}

func (m *MockLogger) Error(key domain.IssueKey, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{"ERROR", key, category, msg})
}

// Messages returns the recorded messages for key.
func (m *MockLogger) Messages(key domain.IssueKey) []string {
	var out []string
	for _, e := range m.Entries {
		if e.Key == key {
			out = append(out, e.Msg)
		}
	}
	return out
}

// MockCommandExecutor is a test double for domain.CommandExecutor.
// Fields are ordered to minimize memory padding.
type MockCommandExecutor struct {
	Err         error
	Output      []byte
	Executed    []*domain.ExecCommand
	Interactive []*domain.ExecCommand
}

// Ensure MockCommandExecutor implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*MockCommandExecutor)(nil)

// Execute records the command and returns Output and Err.
func (m *MockCommandExecutor) Execute(cmd *domain.ExecCommand) ([]byte, error) {
	m.Executed = append(m.Executed, cmd)
	return m.Output, m.Err
}

// ExecuteInteractive records the command and returns Err.
func (m *MockCommandExecutor) ExecuteInteractive(cmd *domain.ExecCommand) error {
	m.Interactive = append(m.Interactive, cmd)
	return m.Err
}

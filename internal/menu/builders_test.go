package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/jiractl/internal/domain"
)

func testIssue() *domain.Issue {
	return &domain.Issue{
		Key:      "ABC-1",
		Summary:  "Fix login",
		Priority: "High",
		Labels:   []string{"backend"},
	}
}

func suffixKeys(m *Menu) []string {
	var keys []string
	for _, s := range m.Suffixes() {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestTransitionMenu(t *testing.T) {
	transitions := []domain.Transition{
		{ID: "11", Name: "Start Progress", ToStatus: "In Progress"},
		{ID: "21", Name: "Stop Progress", ToStatus: "To Do"},
		{ID: "31", Name: "Done", ToStatus: "Done"},
	}
	resolutions := []domain.Resolution{{ID: "1", Name: "Fixed"}, {ID: "2", Name: "Won't Fix"}}

	m, err := TransitionMenu(testIssue(), transitions, resolutions)
	require.NoError(t, err)

	assert.Equal(t, "Transition ABC-1: Fix login", m.Title)
	assert.Equal(t, []string{"s", "t", "d"}, suffixKeys(m))
	s, ok := m.Suffix("t")
	require.True(t, ok)
	assert.Equal(t, Suffix{Key: "t", Label: "Stop Progress → To Do", Action: ActionTransition, Target: "21"}, s)

	require.NoError(t, m.Set(ArgResolution, "won't fix"))
	require.NoError(t, m.Set(ArgComment, "done"))
	assert.Equal(t, map[string]string{ArgResolution: "Won't Fix", ArgComment: "done"}, m.Args())
}

func TestTransitionMenu_WithoutResolutions(t *testing.T) {
	m, err := TransitionMenu(testIssue(), []domain.Transition{{ID: "1", Name: "Go"}}, nil)
	require.NoError(t, err)
	assert.Nil(t, m.Infix("-r"))
	assert.NotNil(t, m.Infix("-c"))
}

func TestTransitionMenu_NoTransitions(t *testing.T) {
	_, err := TransitionMenu(testIssue(), nil, nil)
	require.ErrorIs(t, err, domain.ErrNoTransitions)
}

func TestUpdateMenu(t *testing.T) {
	priorities := []domain.Priority{{ID: "1", Name: "Highest"}, {ID: "2", Name: "High"}}
	users := []domain.User{
		{AccountID: "acc-1", DisplayName: "Alice"},
		{DisplayName: "no account"},
	}

	m, err := UpdateMenu(testIssue(), priorities, users)
	require.NoError(t, err)

	assert.Equal(t, "Priority (High)", m.Infix("-p").Label)
	assert.Equal(t, "Assignee (Unassigned)", m.Infix("-a").Label)
	assert.Equal(t, "Replace labels (backend)", m.Infix("-l").Label)
	assert.Len(t, m.Infix("-a").Choices, 3)

	require.NoError(t, m.Set(ArgAssignee, "alice"))
	require.NoError(t, m.Set(ArgPriority, "Highest"))
	assert.Equal(t, map[string]string{ArgAssignee: "acc-1", ArgPriority: "Highest"}, m.Args())

	s, ok := m.Suffix("u")
	require.True(t, ok)
	assert.Equal(t, ActionUpdate, s.Action)
}

func TestWorklogMenu(t *testing.T) {
	m, err := WorklogMenu(testIssue(), "Fix login")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{ArgComment: "Fix login"}, m.Args())
	require.ErrorIs(t, m.Validate(), ErrMissingArgument)

	require.NoError(t, m.Set(ArgTimeSpent, "1h"))
	require.NoError(t, m.Validate())
}

func TestIssueActionsMenu(t *testing.T) {
	m, err := IssueActionsMenu(testIssue(), false)
	require.NoError(t, err)
	s, _ := m.Suffix("W")
	assert.Equal(t, ActionWatch, s.Action)
	assert.Equal(t, "ABC-1: Fix login", m.Title)

	m, err = IssueActionsMenu(testIssue(), true)
	require.NoError(t, err)
	s, _ = m.Suffix("W")
	assert.Equal(t, ActionUnwatch, s.Action)
}

func TestBulkMenu(t *testing.T) {
	keys := []domain.IssueKey{"ABC-1", "ABC-2"}
	m, err := BulkMenu(keys, []domain.Transition{{ID: "31", Name: "Done"}})
	require.NoError(t, err)

	assert.Equal(t, "Transition 2 issues (ABC-1, ABC-2)", m.Title)
	assert.True(t, m.Switch(ArgNotify))
	assert.False(t, m.Switch(ArgWait))
	s, ok := m.Suffix("d")
	require.True(t, ok)
	assert.Equal(t, ActionBulkTransition, s.Action)
	assert.Equal(t, "31", s.Target)

	_, err = BulkMenu(nil, []domain.Transition{{ID: "31", Name: "Done"}})
	require.ErrorIs(t, err, domain.ErrNoIssuesSelected)
	_, err = BulkMenu(keys, nil)
	require.ErrorIs(t, err, domain.ErrNoTransitions)
}

func TestAssignKeys(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		expected []string
	}{
		{"first letters", []string{"Open", "Close"}, []string{"o", "c"}},
		{"collisions move along", []string{"Start", "Stop", "Stall"}, []string{"s", "t", "a"}},
		{"reserved q skipped", []string{"Queue"}, []string{"u"}},
		{"no letters falls back to digits", []string{"1", "2"}, []string{"1", "2"}},
		{"non-ascii skipped", []string{"Ölçek"}, []string{"l"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, assignKeys(tt.labels, reservedKeys))
		})
	}
}

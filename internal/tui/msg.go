package tui

import (
	"time"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/menu"
	"github.com/runoshun/jiractl/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgIssuesLoaded is sent when the issue list is loaded.
type MsgIssuesLoaded struct {
	JQL    string
	Issues []*domain.Issue
}

func (MsgIssuesLoaded) sealed() {}

// MsgDetailLoaded is sent when one issue with its activity is loaded.
type MsgDetailLoaded struct {
	Detail *usecase.ShowIssueOutput
}

func (MsgDetailLoaded) sealed() {}

// MsgMenuReady is sent when the server state a menu needs has been fetched.
type MsgMenuReady struct {
	Menu  *menu.Menu
	Issue *domain.Issue     // Issue the menu acts on; nil for bulk menus
	Keys  []domain.IssueKey // Issues a bulk menu acts on
}

func (MsgMenuReady) sealed() {}

// MsgCommentsLoaded is sent when comments are loaded for deletion.
type MsgCommentsLoaded struct {
	Key      domain.IssueKey
	Comments []domain.Comment
}

func (MsgCommentsLoaded) sealed() {}

// MsgActionDone is sent when a single-issue action completes.
type MsgActionDone struct {
	Key  domain.IssueKey
	Info string // Shown in the status line
}

func (MsgActionDone) sealed() {}

// MsgInfo is sent when an action finished without changing any issue.
type MsgInfo struct {
	Info string
}

func (MsgInfo) sealed() {}

// MsgBulkSubmitted is sent when a bulk transition has been accepted.
// The list is refreshed after RefreshAfter.
type MsgBulkSubmitted struct {
	Info         string
	Keys         []domain.IssueKey
	RefreshAfter time.Duration
}

func (MsgBulkSubmitted) sealed() {}

// MsgRefresh is sent by the delayed refresh after a bulk transition.
type MsgRefresh struct{}

func (MsgRefresh) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}

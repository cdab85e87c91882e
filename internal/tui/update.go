package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/menu"
	"github.com/runoshun/jiractl/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayoutSizes()
		return m, nil

	case MsgIssuesLoaded:
		m.loading = false
		m.issues = msg.Issues
		m.shownJQL = msg.JQL
		m.updateIssueList()
		return m, nil

	case MsgDetailLoaded:
		m.loading = false
		m.detail = msg.Detail
		if m.mode == ModeDetail {
			m.initDetailViewport()
		}
		return m, nil

	case MsgMenuReady:
		m.loading = false
		m.openMenu(msg)
		return m, nil

	case MsgCommentsLoaded:
		m.loading = false
		key := msg.Key
		return m, m.openChoice("Delete comment on "+string(key), commentChoices(msg.Comments, m.container.Clock.Now()), "", func(id string) tea.Cmd {
			m.loading = true
			return m.deleteComment(key, id)
		})

	case MsgActionDone:
		m.loading = false
		m.info = msg.Info
		cmds := []tea.Cmd{m.loadIssues()}
		if m.mode == ModeDetail && m.detail != nil && m.detail.Issue.Key == msg.Key {
			cmds = append(cmds, m.loadDetail(msg.Key))
		}
		return m, tea.Batch(cmds...)

	case MsgInfo:
		m.loading = false
		m.info = msg.Info
		return m, nil

	case MsgBulkSubmitted:
		m.loading = msg.RefreshAfter > 0
		m.info = msg.Info
		for _, k := range msg.Keys {
			delete(m.marked, k)
		}
		return m, refreshAfter(msg.RefreshAfter)

	case MsgRefresh:
		m.loading = true
		return m, m.loadIssues()

	case MsgError:
		m.loading = false
		m.err = msg.Err
		m.info = ""
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	switch m.mode {
	case ModeInput:
		m.textInput, cmd = m.textInput.Update(msg)
	case ModeChoice:
		m.choiceInput, cmd = m.choiceInput.Update(msg)
	case ModeComment:
		m.commentInput, cmd = m.commentInput.Update(msg)
	case ModeNormal, ModeMenu, ModeDetail, ModeHelp:
	}
	return m, cmd
}

// handleKeyMsg dispatches key presses by mode. Any key press clears the
// previous error or result message.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.info = ""

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.mode = ModeNormal
		}
		return m, nil
	case ModeMenu:
		return m.handleMenuKey(msg)
	case ModeInput:
		return m.handleInputKey(msg)
	case ModeChoice:
		return m.handleChoiceKey(msg)
	case ModeComment:
		return m.handleCommentKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeNormal:
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadIssues()
	case key.Matches(msg, m.keys.Mark):
		m.toggleMark()
		m.issueList.CursorDown()
		return m, nil
	case key.Matches(msg, m.keys.ClearMark):
		clear(m.marked)
		return m, nil
	case key.Matches(msg, m.keys.Bulk):
		keys := m.MarkedKeys()
		if len(keys) == 0 {
			m.err = fmt.Errorf("mark issues with m first: %w", domain.ErrNoIssuesSelected)
			return m, nil
		}
		m.loading = true
		return m, m.openBulkMenu(keys)
	case key.Matches(msg, m.keys.Detail):
		issue := m.SelectedIssue()
		if issue == nil {
			return m, nil
		}
		m.mode = ModeDetail
		m.detail = nil
		m.loading = true
		m.initDetailViewport()
		return m, m.loadDetail(issue.Key)
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PrevPage, m.keys.NextPage):
		var cmd tea.Cmd
		m.issueList, cmd = m.issueList.Update(msg)
		return m, cmd
	}
	return m.handleIssueKey(msg, m.SelectedIssue())
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape, m.keys.Detail, m.keys.Quit) {
		m.mode = ModeNormal
		return m, nil
	}
	if m.detail != nil {
		if model, cmd, ok := m.tryIssueKey(msg, m.detail.Issue); ok {
			return model, cmd
		}
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleIssueKey(msg tea.KeyMsg, issue *domain.Issue) (tea.Model, tea.Cmd) {
	model, cmd, _ := m.tryIssueKey(msg, issue)
	return model, cmd
}

// tryIssueKey runs the per-issue bindings shared by the list and the detail view.
func (m *Model) tryIssueKey(msg tea.KeyMsg, issue *domain.Issue) (tea.Model, tea.Cmd, bool) {
	if issue == nil {
		return m, nil, false
	}
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Actions):
		cmd = m.openActionsMenu(issue.Key)
	case key.Matches(msg, m.keys.Transition):
		cmd = m.openTransitionMenu(issue)
	case key.Matches(msg, m.keys.Update):
		cmd = m.openUpdateMenu(issue)
	case key.Matches(msg, m.keys.Worklog):
		cmd = m.openWorklogMenu(issue)
	case key.Matches(msg, m.keys.Watch):
		cmd = m.watchIssue(issue.Key, usecase.WatchToggle)
	case key.Matches(msg, m.keys.Open):
		cmd = m.openInBrowser(issue.Key)
	case key.Matches(msg, m.keys.Comment):
		return m, m.openComment(issue), true
	default:
		return m, nil, false
	}
	m.loading = true
	return m, cmd, true
}

// commentChoices lists comments for the delete picker, newest first.
func commentChoices(comments []domain.Comment, now time.Time) []menu.Choice {
	choices := make([]menu.Choice, 0, len(comments))
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		text := escapeNewlines(c.Body.PlainText())
		if len([]rune(text)) > 60 {
			text = string([]rune(text)[:57]) + "..."
		}
		label := fmt.Sprintf("%s, %s: %s", c.Author.Name(), humanize.RelTime(c.Created, now, "ago", "from now"), text)
		choices = append(choices, menu.Choice{Label: label, Value: c.ID})
	}
	return choices
}

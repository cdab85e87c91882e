package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/menu"
)

// handleMenuKey drives the open menu: "-" followed by a key edits an
// argument, any other bound key runs its action.
func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if m.pendingDash {
		m.pendingDash = false
		if k == "esc" {
			return m, nil
		}
		in := m.menu.Infix("-" + k)
		if in == nil {
			m.err = fmt.Errorf("no argument bound to -%s", k)
			return m, nil
		}
		return m, m.editInfix(in)
	}

	switch k {
	case "esc", "q":
		m.closeMenu()
		return m, nil
	case "-":
		m.pendingDash = true
		return m, nil
	}

	s, ok := m.menu.Suffix(k)
	if !ok {
		m.err = fmt.Errorf("no action bound to %s", k)
		return m, nil
	}
	return m.runMenuSuffix(s)
}

// editInfix toggles a switch, clears or picks a choice, or opens the text
// input for a free-text argument.
func (m *Model) editInfix(in *menu.Infix) tea.Cmd {
	switch in.Kind {
	case menu.KindSwitch:
		if _, err := m.menu.Toggle(in.Name); err != nil {
			m.err = err
		}
		return nil
	case menu.KindChoice:
		if in.IsSet() {
			if err := m.menu.Set(in.Name, ""); err != nil {
				m.err = err
			}
			return nil
		}
		name := in.Name
		return m.openChoice(in.Label, in.Choices, in.Value, func(value string) tea.Cmd {
			if err := m.menu.Set(name, value); err != nil {
				m.err = err
			}
			return nil
		})
	case menu.KindText:
	}

	m.inputName = in.Name
	m.returnMode = m.mode
	m.mode = ModeInput
	m.textInput.Prompt = in.Label + ": "
	m.textInput.SetValue(in.Value)
	m.textInput.CursorEnd()
	return m.textInput.Focus()
}

// handleInputKey edits the value of a free-text argument.
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		if err := m.menu.Set(m.inputName, m.textInput.Value()); err != nil {
			m.err = err
		}
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.textInput.Blur()
	m.textInput.Reset()
	m.inputName = ""
	m.mode = m.returnMode
}

// runMenuSuffix validates the arguments and runs the action.
func (m *Model) runMenuSuffix(s menu.Suffix) (tea.Model, tea.Cmd) {
	if err := m.menu.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	mn, issue, keys := m.menu, m.menuIssue, m.menuKeys
	m.closeMenu()

	switch s.Action {
	case menu.ActionComment:
		return m, m.openComment(issue)
	case menu.ActionDetail:
		m.mode = ModeDetail
		m.detail = nil
		m.initDetailViewport()
		m.loading = true
		return m, m.loadDetail(issue.Key)
	default:
		m.loading = true
		return m, m.runSuffix(mn, s, issue, keys)
	}
}

func (m *Model) openMenu(msg MsgMenuReady) {
	m.menu = msg.Menu
	m.menuIssue = msg.Issue
	m.menuKeys = msg.Keys
	m.pendingDash = false
	m.menuReturn = ModeNormal
	if m.mode == ModeDetail {
		m.menuReturn = ModeDetail
	}
	m.mode = ModeMenu
}

func (m *Model) closeMenu() {
	m.menu = nil
	m.menuIssue = nil
	m.menuKeys = nil
	m.pendingDash = false
	if m.mode == ModeMenu {
		m.mode = m.menuReturn
	}
}

// openComment starts a comment draft for issue.
func (m *Model) openComment(issue *domain.Issue) tea.Cmd {
	if issue == nil {
		return nil
	}
	m.returnMode = m.mode
	if m.returnMode != ModeDetail {
		m.returnMode = ModeNormal
	}
	m.mode = ModeComment
	m.commentKey = issue.Key
	m.commentHeader = domain.CommentDraftHeader(issue.Key, issue.Summary)
	m.commentInput.Reset()
	return m.commentInput.Focus()
}

// handleCommentKey edits the draft; ctrl+s submits it.
func (m *Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeComment()
		return m, nil
	case "ctrl+s":
		key, body := m.commentKey, m.commentInput.Value()
		if strings.TrimSpace(body) == "" {
			m.err = domain.ErrEmptyMessage
			return m, nil
		}
		m.closeComment()
		m.loading = true
		return m, m.addComment(key, body)
	}
	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

func (m *Model) closeComment() {
	m.commentInput.Blur()
	m.commentKey = ""
	m.commentHeader = ""
	m.mode = m.returnMode
}

// viewMenu renders the menu groups side by side.
func (m *Model) viewMenu() string {
	if m.menu == nil {
		return ""
	}
	columns := make([]string, 0, len(m.menu.Groups))
	for _, g := range m.menu.Groups {
		var lines []string
		lines = append(lines, m.styles.MenuGroup.Render(g.Title))
		for _, in := range g.Infixes {
			lines = append(lines, m.infixLine(in))
		}
		for _, s := range g.Suffixes {
			lines = append(lines, " "+m.styles.MenuKey.Render(s.Key)+" "+s.Label)
		}
		columns = append(columns, lipgloss.NewStyle().MarginRight(4).Render(strings.Join(lines, "\n")))
	}

	var b strings.Builder
	b.WriteString(m.styles.MenuTitle.Render(m.menu.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	if cl := m.menu.CommandLine(); cl != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.MenuUnset.Render(cl))
	}
	if m.pendingDash {
		b.WriteString("\n\n")
		b.WriteString(m.styles.MenuPending.Render("-"))
	}
	return m.styles.Menu.Render(b.String())
}

func (m *Model) infixLine(in *menu.Infix) string {
	value := m.styles.MenuUnset.Render("(unset)")
	if in.IsSet() {
		value = m.styles.MenuValue.Render(in.Display())
	} else if in.Kind == menu.KindSwitch {
		value = m.styles.MenuUnset.Render("off")
	}
	label := in.Label
	if in.Required {
		label += "*"
	}
	return " " + m.styles.MenuKey.Render(in.Key) + " " + label + " " + value
}

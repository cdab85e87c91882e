package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeDetail:
		content = m.viewDetail()
	case ModeNormal, ModeMenu, ModeInput, ModeChoice, ModeComment:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the issue list, replaced by the active dialog if any.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch m.mode {
	case ModeMenu:
		b.WriteString(m.viewMenu())
	case ModeInput:
		b.WriteString(m.viewMenu())
		b.WriteString("\n")
		b.WriteString(m.viewInput())
	case ModeChoice:
		if m.menu != nil {
			b.WriteString(m.viewMenu())
			b.WriteString("\n")
		}
		b.WriteString(m.viewChoice())
	case ModeComment:
		b.WriteString(m.viewComment())
	case ModeNormal, ModeDetail, ModeHelp:
		b.WriteString(m.viewIssueList())
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine.Render(m.GetStatusInfo()))
	return b.String()
}

// viewHeader renders "Issues" with the count and the query on the right.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Issues")

	countText := fmt.Sprintf("%d issues", len(m.issues))
	if m.loading {
		countText = "loading..."
	}
	right := lipgloss.NewStyle().Foreground(Colors.Muted).Render(countText)

	headerWidth := m.width - 6
	if headerWidth < 40 {
		headerWidth = 40
	}
	if m.shownJQL != "" {
		room := headerWidth - lipgloss.Width(title) - lipgloss.Width(right) - 6
		if room > 10 {
			jql := m.shownJQL
			if lipgloss.Width(jql) > room {
				jql = lipgloss.NewStyle().MaxWidth(room-3).Render(jql) + "..."
			}
			right = m.styles.HeaderJQL.Render(jql) + "  " + right
		}
	}

	spacing := headerWidth - lipgloss.Width(title) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + right)
}

func (m *Model) viewIssueList() string {
	if len(m.issues) == 0 {
		return m.viewEmptyState()
	}
	return m.issueList.View()
}

func (m *Model) viewEmptyState() string {
	if m.loading {
		return m.styles.MenuUnset.Render("  Loading issues...")
	}
	return m.styles.MenuUnset.Render("  No issues match the query.  r refresh  q quit")
}

func (m *Model) viewInput() string {
	return m.styles.Dialog.Render(m.textInput.View())
}

func (m *Model) viewComment() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Comment on " + m.commentHeader))
	b.WriteString("\n\n")
	b.WriteString(m.commentInput.View())
	return m.styles.Dialog.Render(b.String())
}

// viewDetail renders the detail viewport with a title bar.
func (m *Model) viewDetail() string {
	var b strings.Builder
	title := "Issue"
	if m.detail != nil {
		title = string(m.detail.Issue.Key)
	}
	scroll := lipgloss.NewStyle().Foreground(Colors.Muted).Render(fmt.Sprintf("%3.f%%", m.detailViewport.ScrollPercent()*100))
	b.WriteString(m.styles.DetailTitle.Render(title) + "  " + scroll)
	b.WriteString("\n")
	b.WriteString(m.detailViewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine.Render(m.GetStatusInfo()))
	return b.String()
}

func (m *Model) viewHelp() string {
	m.help.ShowAll = true
	content := m.styles.DialogTitle.Render("Keys") + "\n\n" + m.help.View(m.keys) +
		"\n\n" + m.styles.HelpDesc.Render("In menus: -<key> sets an argument, <key> runs an action, q closes.")
	return m.styles.Help.Render(content)
}

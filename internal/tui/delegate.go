package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/jiractl/internal/domain"
)

type issueItem struct {
	issue *domain.Issue
}

func (i issueItem) FilterValue() string {
	return string(i.issue.Key) + " " + i.issue.Summary
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// issueDelegate renders two lines per issue: key, status and summary, then
// assignee, priority, labels and last update.
type issueDelegate struct {
	marked func(domain.IssueKey) bool
	now    func() time.Time
	styles Styles
}

func newIssueDelegate(styles Styles, marked func(domain.IssueKey) bool, now func() time.Time) issueDelegate {
	return issueDelegate{styles: styles, marked: marked, now: now}
}

func (d issueDelegate) Height() int {
	return 2
}

func (d issueDelegate) Spacing() int {
	return 1
}

func (d issueDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d issueDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ii, ok := item.(issueItem)
	if !ok {
		return
	}
	issue := ii.issue
	selected := index == m.Index()
	listWidth := m.Width()

	indicator := " "
	if selected {
		indicator = ">"
	}
	mark := " "
	if d.marked != nil && d.marked(issue.Key) {
		mark = "*"
	}

	keyStr := fmt.Sprintf("%-10s", issue.Key)
	statusStyle := d.styles.StatusStyle(issue.Status.Category)
	statusText := runewidth.FillRight(runewidth.Truncate(issue.Status.Name, 14, "…"), 14)

	prefixWidth := 2 + 1 + 1 + 1 + runewidth.StringWidth(keyStr) + 2 + 2 + 14 + 2
	maxSummaryLen := listWidth - prefixWidth - 2
	if maxSummaryLen < 10 {
		maxSummaryLen = 10
	}
	summary := escapeNewlines(issue.Summary)
	if runewidth.StringWidth(summary) > maxSummaryLen {
		summary = runewidth.Truncate(summary, maxSummaryLen, "...")
	}

	keyStyle, summaryStyle, metaStyle := d.styles.IssueKey, d.styles.Summary, d.styles.Meta
	if selected {
		keyStyle, summaryStyle, metaStyle = d.styles.IssueKeySelected, d.styles.SummarySelected, d.styles.MetaSelected
		statusStyle = statusStyle.Bold(true)
	}

	line := "  " + d.styles.Indicator.Render(indicator) + d.styles.Mark.Render(mark) + " " +
		keyStyle.Render(keyStr) + "  " +
		statusStyle.Render(StatusIcon(issue.Status.Category)+" "+statusText) + "  " +
		summaryStyle.Render(summary)
	_, _ = fmt.Fprintln(w, padRight(line, listWidth))

	meta := strings.Repeat(" ", 5) + metaStyle.Render(d.metaLine(issue))
	if len(issue.Labels) > 0 {
		meta += "  " + d.styles.Labels.Render("["+strings.Join(issue.Labels, "] [")+"]")
	}
	_, _ = fmt.Fprint(w, padRight(meta, listWidth))
}

// metaLine summarizes who owns the issue and when it last changed.
func (d issueDelegate) metaLine(issue *domain.Issue) string {
	parts := []string{issue.Assignee.Name()}
	if issue.Type != "" {
		parts = append(parts, issue.Type)
	}
	if issue.Priority != "" {
		parts = append(parts, issue.Priority)
	}
	if !issue.Updated.IsZero() {
		parts = append(parts, "updated "+humanize.RelTime(issue.Updated, d.now(), "ago", "from now"))
	}
	return strings.Join(parts, " · ")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

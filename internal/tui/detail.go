package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/dustin/go-humanize"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase"
)

// DetailMarkdown renders an issue with its activity as Markdown.
func DetailMarkdown(d *usecase.ShowIssueOutput, now time.Time) string {
	issue := d.Issue
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", domain.CommentDraftHeader(issue.Key, issue.Summary))

	b.WriteString("| Field | Value |\n| --- | --- |\n")
	row := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "| %s | %s |\n", name, strings.ReplaceAll(value, "|", `\|`))
		}
	}
	row("Status", issue.Status.Name)
	row("Type", issue.Type)
	row("Priority", issue.Priority)
	row("Assignee", issue.Assignee.Name())
	if issue.Reporter != nil {
		row("Reporter", issue.Reporter.Name())
	}
	row("Resolution", issue.Resolution)
	row("Parent", string(issue.Parent))
	row("Labels", strings.Join(issue.Labels, ", "))
	if !issue.Created.IsZero() {
		row("Created", relative(issue.Created, now))
	}
	if !issue.Updated.IsZero() {
		row("Updated", relative(issue.Updated, now))
	}

	b.WriteString("\n## Description\n\n")
	if issue.Description.IsEmpty() {
		b.WriteString("_No description._\n")
	} else {
		b.WriteString(issue.Description.Markdown())
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n## Comments (%d)\n", len(d.Comments))
	for _, c := range d.Comments {
		fmt.Fprintf(&b, "\n### %s · %s\n\n", c.Author.Name(), relative(c.Created, now))
		if c.Body.IsEmpty() {
			b.WriteString("_(empty)_\n")
		} else {
			b.WriteString(c.Body.Markdown())
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n`id %s`\n", c.ID)
	}

	total := 0
	for _, w := range d.Worklogs {
		total += w.TimeSpentSeconds
	}
	fmt.Fprintf(&b, "\n## Worklogs (%d, %s)\n\n", len(d.Worklogs), domain.FormatWorklogDuration(total))
	for _, w := range d.Worklogs {
		fmt.Fprintf(&b, "- **%s** %s, %s", w.Author.Name(), domain.FormatWorklogDuration(w.TimeSpentSeconds), relative(w.Started, now))
		if w.Comment != "" {
			fmt.Fprintf(&b, ": %s", escapeNewlines(w.Comment))
		}
		b.WriteString("\n")
	}

	if d.Watchers != nil {
		fmt.Fprintf(&b, "\n## Watchers (%d)\n\n", d.Watchers.Count)
		for _, u := range d.Watchers.Users {
			fmt.Fprintf(&b, "- %s\n", u.Name())
		}
		if d.Watchers.IsWatching {
			b.WriteString("\n_You are watching this issue._\n")
		}
	}
	return b.String()
}

func relative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// renderMarkdown renders md for the terminal, falling back to the raw
// Markdown when the renderer fails.
func renderMarkdown(md string, width int) string {
	style := glamourstyles.DarkStyleConfig
	style.CodeBlock.Theme = codeTheme
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) initDetailViewport() {
	width := m.width - 6
	height := m.height - 6
	if width < 40 {
		width = 40
	}
	if height < 10 {
		height = 10
	}
	m.detailViewport = viewport.New(width, height)
	m.detailViewport.SetContent(m.detailContent(width))
}

func (m *Model) detailContent(width int) string {
	if m.detail == nil {
		if m.loading {
			return "Loading..."
		}
		return "No issue selected"
	}
	return renderMarkdown(DetailMarkdown(m.detail, m.container.Clock.Now()), width)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Err        error  // Shown instead of the key hints
	Info       string // Result of the last action
	Pagination string // Optional pagination info (e.g., "1/3")
	KeyHints   []KeyHint
	Marked     int
	Mode       Mode
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a unified status line at the bottom of the screen.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// SetWidth updates the status line width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	var content string
	switch {
	case info.Err != nil:
		content = s.styles.ErrorMsg.Render("Error: " + info.Err.Error())
	case info.Info != "":
		content = s.styles.InfoMsg.Render(info.Info)
	default:
		hints := make([]string, 0, len(info.KeyHints))
		for _, h := range info.KeyHints {
			hints = append(hints, s.styles.FooterKey.Render(h.Key)+" "+h.Desc)
		}
		content = strings.Join(hints, "  ")
	}

	mutedStyle := lipgloss.NewStyle().Foreground(Colors.Muted)
	right := []string{}
	if info.Marked > 0 {
		right = append(right, s.styles.Mark.Render(fmt.Sprintf("%d marked", info.Marked)))
	}
	if info.Pagination != "" {
		right = append(right, info.Pagination)
	}
	right = append(right, mutedStyle.Render("mode:"+info.Mode.String()))
	rightContent := strings.Join(right, "  ")

	contentWidth := s.width - 2 // Account for padding
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			content = ansi.Truncate(content, maxContentWidth, "...")
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := contentWidth - contentLen - rightLen
	if spacing < 1 {
		spacing = 1
	}

	return s.styles.Footer.Width(s.width).Render(content + strings.Repeat(" ", spacing) + rightContent)
}

// GetStatusInfo returns status line info for the TUI model.
func (m *Model) GetStatusInfo() StatusLineInfo {
	info := StatusLineInfo{
		Err:    m.err,
		Info:   m.info,
		Marked: len(m.marked),
		Mode:   m.mode,
	}

	switch m.mode {
	case ModeNormal:
		info.Pagination = m.issueList.Paginator.View()
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "nav"},
			{Key: "enter", Desc: "actions"},
			{Key: "t", Desc: "transition"},
			{Key: "m", Desc: "mark"},
			{Key: "T", Desc: "bulk"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeMenu:
		info.KeyHints = []KeyHint{
			{Key: "-x", Desc: "argument"},
			{Key: "key", Desc: "run"},
			{Key: "q/esc", Desc: "close"},
		}
	case ModeInput:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "set"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeChoice:
		info.KeyHints = []KeyHint{
			{Key: "type", Desc: "filter"},
			{Key: "↑/↓", Desc: "move"},
			{Key: "enter", Desc: "select"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeComment:
		info.KeyHints = []KeyHint{
			{Key: "ctrl+s", Desc: "submit"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeDetail:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "scroll"},
			{Key: "enter", Desc: "actions"},
			{Key: "esc", Desc: "back"},
		}
	case ModeHelp:
		info.KeyHints = []KeyHint{
			{Key: "esc", Desc: "close"},
		}
	}
	return info
}

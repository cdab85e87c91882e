package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/jiractl/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
	DescSelected  lipgloss.Color

	// Status category colors
	Todo       lipgloss.Color
	InProgress lipgloss.Color
	Done       lipgloss.Color
	Unknown    lipgloss.Color

	// Bulk marks
	Marked lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray
	DescSelected:  lipgloss.Color("#B2BEC3"), // Light gray

	Todo:       lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Done:       lipgloss.Color("#00B894"), // Green
	Unknown:    lipgloss.Color("#636E72"), // Gray

	Marked: lipgloss.Color("#FD79A8"), // Pink
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	HeaderJQL  lipgloss.Style

	// Issue list
	IssueKey         lipgloss.Style
	IssueKeySelected lipgloss.Style
	Summary          lipgloss.Style
	SummarySelected  lipgloss.Style
	Meta             lipgloss.Style
	MetaSelected     lipgloss.Style
	Labels           lipgloss.Style
	Mark             lipgloss.Style
	Indicator        lipgloss.Style

	// Status badges
	StatusTodo       lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusDone       lipgloss.Style
	StatusUnknown    lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Menu
	Menu        lipgloss.Style
	MenuTitle   lipgloss.Style
	MenuGroup   lipgloss.Style
	MenuKey     lipgloss.Style
	MenuValue   lipgloss.Style
	MenuUnset   lipgloss.Style
	MenuPending lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Choice picker
	ChoiceSelected lipgloss.Style
	ChoiceMatch    lipgloss.Style

	// Messages
	ErrorMsg lipgloss.Style
	InfoMsg  lipgloss.Style

	// Detail view
	DetailTitle lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		HeaderJQL: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		IssueKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		IssueKeySelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		Summary: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		SummarySelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		Meta: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		MetaSelected: lipgloss.NewStyle().
			Foreground(Colors.DescSelected),

		Labels: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Italic(true),

		Mark: lipgloss.NewStyle().
			Foreground(Colors.Marked).
			Bold(true),

		Indicator: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		StatusTodo: lipgloss.NewStyle().
			Foreground(Colors.Todo),

		StatusInProgress: lipgloss.NewStyle().
			Foreground(Colors.InProgress),

		StatusDone: lipgloss.NewStyle().
			Foreground(Colors.Done),

		StatusUnknown: lipgloss.NewStyle().
			Foreground(Colors.Unknown),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Menu: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		MenuTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		MenuGroup: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		MenuValue: lipgloss.NewStyle().
			Foreground(Colors.Success),

		MenuUnset: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		MenuPending: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ChoiceSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		ChoiceMatch: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Underline(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		InfoMsg: lipgloss.NewStyle().
			Foreground(Colors.Success),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
	}
}

// StatusStyle returns the style for a status category.
func (s Styles) StatusStyle(category domain.StatusCategory) lipgloss.Style {
	switch category {
	case domain.CategoryToDo:
		return s.StatusTodo
	case domain.CategoryInProgress:
		return s.StatusInProgress
	case domain.CategoryDone:
		return s.StatusDone
	case domain.CategoryUnknown:
		return s.StatusUnknown
	default:
		return s.StatusUnknown
	}
}

// StatusIcon returns an icon for a status category.
func StatusIcon(category domain.StatusCategory) string {
	switch category {
	case domain.CategoryToDo:
		return "○"
	case domain.CategoryInProgress:
		return "●"
	case domain.CategoryDone:
		return "✓"
	case domain.CategoryUnknown:
		return "?"
	default:
		return "?"
	}
}

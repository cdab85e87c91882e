// Package tui provides the terminal user interface for jiractl.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Issue list navigation
	ModeMenu                // Transient action menu
	ModeInput               // Free-text value of a menu argument
	ModeChoice              // Picking one of a fixed set of values
	ModeComment             // Drafting a comment
	ModeDetail              // Issue detail view
	ModeHelp                // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMenu:
		return "menu"
	case ModeInput:
		return "input"
	case ModeChoice:
		return "choice"
	case ModeComment:
		return "comment"
	case ModeDetail:
		return "detail"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInput, ModeChoice, ModeComment:
		return true
	case ModeNormal, ModeMenu, ModeDetail, ModeHelp:
		return false
	}
	return false
}

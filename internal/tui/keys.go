package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Actions
	Actions    key.Binding // Issue actions menu
	Transition key.Binding // Transition menu
	Update     key.Binding // Update fields menu
	Worklog    key.Binding // Worklog menu
	Comment    key.Binding // Draft a comment
	Watch      key.Binding // Toggle watching
	Open       key.Binding // Open in browser

	// Bulk
	Mark      key.Binding // Mark issue for bulk transition
	ClearMark key.Binding // Clear all marks
	Bulk      key.Binding // Bulk transition menu

	// View
	Refresh key.Binding // Reload the issue list
	Detail  key.Binding // Toggle detail view
	Help    key.Binding // Show help

	// General
	Quit   key.Binding // Quit application
	Escape key.Binding // Cancel/back
	Submit key.Binding // Submit comment draft
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Actions: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "actions"),
		),
		Transition: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transition"),
		),
		Update: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "update"),
		),
		Worklog: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "log work"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Watch: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "watch/unwatch"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m", "x"),
			key.WithHelp("m", "mark"),
		),
		ClearMark: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "clear marks"),
		),
		Bulk: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "bulk transition"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Detail: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "detail"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Actions, k.Transition, k.Mark, k.Bulk, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},                                     // Navigation
		{k.Actions, k.Transition, k.Update, k.Worklog, k.Comment, k.Watch, k.Open}, // Issue
		{k.Mark, k.ClearMark, k.Bulk},                                              // Bulk
		{k.Refresh, k.Detail, k.Help, k.Quit},                                      // View & general
	}
}

package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/tui"
)

// launchTUI runs the interactive issue list until the user quits.
func launchTUI(c *app.Container, jql string) error {
	p := tea.NewProgram(tui.New(c, jql), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

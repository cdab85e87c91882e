// Package executor runs external programs such as the editor and the browser opener.
package executor

import (
	"os"
	"os/exec"

	"github.com/runoshun/jiractl/internal/domain"
)

// Client implements domain.CommandExecutor interface.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Execute runs the command and returns its combined output.
func (c *Client) Execute(cmd *domain.ExecCommand) ([]byte, error) {
	// #nosec G204 - cmd.Program comes from $EDITOR, $BROWSER or the platform opener
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	return execCmd.CombinedOutput()
}

// ExecuteInteractive runs a command with stdin/stdout/stderr connected to the terminal.
func (c *Client) ExecuteInteractive(cmd *domain.ExecCommand) error {
	// #nosec G204 - cmd.Program comes from $EDITOR, $BROWSER or the platform opener
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	return execCmd.Run()
}

package domain

import "strings"

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// NewCommand creates an ExecCommand.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{Program: program, Args: args, Dir: dir}
}

// EditorCommand opens path in editor. The editor value may carry
// arguments, e.g. "code --wait".
func EditorCommand(editor, path string) *ExecCommand {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	return NewCommand(parts[0], append(parts[1:], path), "")
}

// BrowserCommand opens url with browser when set (as in $BROWSER), or with
// the platform opener for goos.
func BrowserCommand(goos, browser, url string) *ExecCommand {
	if parts := strings.Fields(browser); len(parts) > 0 {
		return NewCommand(parts[0], append(parts[1:], url), "")
	}
	switch goos {
	case "darwin":
		return NewCommand("open", []string{url}, "")
	case "windows":
		return NewCommand("rundll32", []string{"url.dll,FileProtocolHandler", url}, "")
	}
	return NewCommand("xdg-open", []string{url}, "")
}

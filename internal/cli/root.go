// Package cli provides the command-line interface for jiractl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/jiractl/internal/app"
)

// Command group IDs.
const (
	groupIssue    = "issue"
	groupActivity = "activity"
	groupSetup    = "setup"
)

// annotationTracker marks commands that talk to the Jira server.
const annotationTracker = "jiractl/tracker"

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for jiractl.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var jql string

	root := &cobra.Command{
		Use:   "jiractl",
		Short: "Interactive Jira client",
		Long: `jiractl is a terminal client for Jira.

Run without arguments to open the interactive issue list. Issues are
transitioned, edited, commented on and logged against through keyed menus;
mark several issues with m and press T to transition them in bulk.

Every action is also available as a subcommand for scripting. Commands that
take an issue key default to the key found in the current git branch name.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		Annotations:   map[string]string{annotationTracker: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			if cmd.Annotations[annotationTracker] == "true" {
				return c.RequireTracker()
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c, jql)
		},
	}

	root.Flags().StringVar(&jql, "jql", "", "JQL for the issue list (default: [list] jql)")

	root.AddGroup(
		&cobra.Group{ID: groupIssue, Title: "Issue Commands:"},
		&cobra.Group{ID: groupActivity, Title: "Activity Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	issueCmds := []*cobra.Command{
		newListCommand(c),
		newShowCommand(c),
		newTransitionCommand(c),
		newTransitionsCommand(c),
		newUpdateCommand(c),
		newResolutionsCommand(c),
		newPrioritiesCommand(c),
		newUsersCommand(c),
		newCurrentCommand(c),
		newOpenCommand(c),
	}
	for _, cmd := range issueCmds {
		cmd.GroupID = groupIssue
	}

	activityCmds := []*cobra.Command{
		newCommentCommand(c),
		newWorklogCommand(c),
		newWatchCommand(c),
		newUnwatchCommand(c),
	}
	for _, cmd := range activityCmds {
		cmd.GroupID = groupActivity
	}

	setupCmds := []*cobra.Command{
		newConfigCommand(c),
		newCacheCommand(c),
	}
	for _, cmd := range setupCmds {
		cmd.GroupID = groupSetup
	}

	root.AddCommand(issueCmds...)
	root.AddCommand(activityCmds...)
	root.AddCommand(setupCmds...)

	return root
}

// requiresTracker marks cmd as needing a configured Jira connection.
func requiresTracker(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[annotationTracker] = "true"
	return cmd
}

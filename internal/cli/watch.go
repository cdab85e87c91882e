package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/usecase"
)

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	return newWatchModeCommand(c, "watch", "Watch issues", usecase.WatchAdd)
}

// newUnwatchCommand creates the unwatch command.
func newUnwatchCommand(c *app.Container) *cobra.Command {
	return newWatchModeCommand(c, "unwatch", "Stop watching issues", usecase.WatchRemove)
}

func newWatchModeCommand(c *app.Container, name, short string, mode usecase.WatchMode) *cobra.Command {
	var opts struct {
		User string
	}

	cmd := &cobra.Command{
		Use:   name + " [key...]",
		Short: short,
		Long: short + `. The current user is used unless --user gives an account id
(see "jiractl users").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := resolveIssueKeys(cmd.Context(), c, args)
			if err != nil {
				return err
			}
			uc := c.WatchIssueUseCase()
			for _, key := range keys {
				out, err := uc.Execute(cmd.Context(), usecase.WatchIssueInput{
					Key:       key,
					AccountID: opts.User,
					Mode:      mode,
				})
				if err != nil {
					return err
				}
				if out.Watching {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", key)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stopped watching %s\n", key)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.User, "user", "u", "", "Account id of the watcher (default: you)")

	return requiresTracker(cmd)
}

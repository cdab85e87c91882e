package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase"
)

// newWorklogCommand creates the worklog command with its subcommands.
func newWorklogCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worklog",
		Short: "Log and list time spent on issues",
	}

	cmd.AddCommand(
		newWorklogAddCommand(c),
		newWorklogListCommand(c),
	)

	return cmd
}

func newWorklogAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Comment string
		Started string
	}

	cmd := &cobra.Command{
		Use:   "add [key] <time>",
		Short: "Log time on an issue",
		Long: `Log time on an issue using Jira duration notation (1w 2d 3h 30m).
A bare number is read as minutes.

The worklog comment defaults to the cached summary of the issue, then to
[worklog] default_comment. Pass --comment "" to log without a comment.

Examples:
  # Log an hour and a half on the current branch's issue
  jiractl worklog add "1h 30m"

  # Log yesterday's meeting
  jiractl worklog add ABC-1 45m --started "2026-03-09 09:15" --comment "Planning"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveIssueKey(cmd.Context(), c, args[:len(args)-1])
			if err != nil {
				return err
			}

			in := usecase.AddWorklogInput{
				Key:       key,
				TimeSpent: args[len(args)-1],
			}
			if cmd.Flags().Changed("comment") {
				in.Comment = &opts.Comment
			}
			if opts.Started != "" {
				started, err := domain.ParseWorklogStarted(opts.Started)
				if err != nil {
					return err
				}
				in.Started = started
			}

			out, err := c.AddWorklogUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s\n", domain.FormatWorklogDuration(out.Worklog.TimeSpentSeconds), key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Comment, "comment", "m", "", "Worklog comment (default: cached summary)")
	cmd.Flags().StringVar(&opts.Started, "started", "", "Start time as YYYY-MM-DD HH:MM (default: now)")

	return requiresTracker(cmd)
}

func newWorklogListCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [key]",
		Short: "List the worklogs of an issue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveIssueKey(cmd.Context(), c, args)
			if err != nil {
				return err
			}
			out, err := c.ListWorklogsUseCase().Execute(cmd.Context(), usecase.ListWorklogsInput{Key: key})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Worklogs) == 0 {
				_, _ = fmt.Fprintf(w, "No worklogs on %s\n", key)
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tAUTHOR\tSTARTED\tTIME\tCOMMENT")
			for _, wl := range out.Worklogs {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					wl.ID,
					wl.Author.Name(),
					wl.Started.Local().Format("2006-01-02 15:04"),
					domain.FormatWorklogDuration(wl.TimeSpentSeconds),
					orDash(oneLine(wl.Comment)),
				)
			}
			_ = tw.Flush()

			_, _ = fmt.Fprintf(w, "\nTotal: %s\n", domain.FormatWorklogDuration(out.TotalSeconds))
			return nil
		},
	}
	return requiresTracker(cmd)
}

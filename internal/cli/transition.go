package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase"
)

// newTransitionCommand creates the transition command for moving issues.
func newTransitionCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Resolution string
		Comment    string
		Bulk       bool
		Wait       bool
		NoNotify   bool
	}

	cmd := &cobra.Command{
		Use:   "transition <transition> [key...]",
		Short: "Move issues through their workflow",
		Long: `Apply a workflow transition, given by id, name or target status.

With one key (or none, to use the current branch's issue) the transition
is applied directly and may carry a resolution and a comment.

With several keys, or with --bulk, a bulk transition is submitted. Jira
applies it in the background: by default the command waits the configured
[bulk] refresh_delay, with --wait it polls until the server reports the
task finished.

Examples:
  # Start the issue of the current branch
  jiractl transition "In Progress"

  # Resolve an issue with a comment
  jiractl transition Done ABC-1 --resolution Fixed --comment "Released in 2.3"

  # Close three issues at once without notifications
  jiractl transition Done ABC-1 ABC-2 ABC-3 --no-notify --wait`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transition := args[0]
			keys, err := resolveIssueKeys(cmd.Context(), c, args[1:])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(keys) == 1 && !opts.Bulk {
				out, err := c.TransitionIssueUseCase().Execute(cmd.Context(), usecase.TransitionIssueInput{
					Key:        keys[0],
					Transition: transition,
					Resolution: opts.Resolution,
					Comment:    opts.Comment,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s: %s\n", keys[0], out.Transition.Label())
				return nil
			}

			if opts.Resolution != "" || opts.Comment != "" {
				return fmt.Errorf("--resolution and --comment are not supported for bulk transitions")
			}
			in := usecase.BulkTransitionInput{
				Keys:       keys,
				Transition: transition,
				Wait:       opts.Wait,
			}
			if cmd.Flags().Changed("no-notify") {
				notify := !opts.NoNotify
				in.Notify = &notify
			}
			out, err := c.BulkTransitionUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			if opts.Wait {
				_, _ = fmt.Fprintln(w, out.Result())
			} else {
				_, _ = fmt.Fprintf(w, "%s submitted for %d issues (task %s)\n", out.Transition.Label(), len(out.Keys), out.Task.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Resolution, "resolution", "r", "", "Resolution to set")
	cmd.Flags().StringVarP(&opts.Comment, "comment", "m", "", "Comment to add with the transition")
	cmd.Flags().BoolVar(&opts.Bulk, "bulk", false, "Use a bulk transition even for one issue")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "Poll a bulk transition until it finishes")
	cmd.Flags().BoolVar(&opts.NoNotify, "no-notify", false, "Do not send notifications for a bulk transition")

	return requiresTracker(cmd)
}

// newTransitionsCommand creates the transitions command for listing available transitions.
func newTransitionsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transitions [key...]",
		Short: "List available transitions",
		Long: `List the transitions available for an issue.

With several keys only the transitions every issue shares are listed,
which are the ones a bulk transition can apply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := resolveIssueKeys(cmd.Context(), c, args)
			if err != nil {
				return err
			}
			out, err := c.ListTransitionsUseCase().Execute(cmd.Context(), usecase.ListTransitionsInput{Keys: keys})
			if err != nil {
				return err
			}
			printTransitions(cmd, out.Transitions)
			return nil
		},
	}
	return requiresTracker(cmd)
}

func printTransitions(cmd *cobra.Command, transitions []domain.Transition) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTO STATUS")
	for _, t := range transitions {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name, orDash(t.ToStatus))
	}
}

// newResolutionsCommand creates the resolutions command.
func newResolutionsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolutions",
		Short: "List resolution values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListResolutionsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()
			_, _ = fmt.Fprintln(tw, "NAME\tDESCRIPTION")
			for _, r := range out.Resolutions {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", r.Name, orDash(r.Description))
			}
			return nil
		},
	}
	return requiresTracker(cmd)
}

// newPrioritiesCommand creates the priorities command.
func newPrioritiesCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priorities",
		Short: "List priority values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListPrioritiesUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range out.Priorities {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p.Name)
			}
			return nil
		},
	}
	return requiresTracker(cmd)
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/usecase"
)

// newCacheCommand creates the cache command for the issue summary cache.
func newCacheCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the issue summary cache",
		Long: `Manage the local cache of issue summaries.

Summaries are cached whenever issues are listed or shown. They head comment
drafts and serve as the default worklog comment.`,
	}

	cmd.AddCommand(
		newCacheListCommand(c),
		newCacheFillCommand(c),
		newCacheClearCommand(c),
	)

	return cmd
}

func newCacheListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListCacheUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty")
				return nil
			}

			now := c.Clock.Now()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()
			_, _ = fmt.Fprintln(tw, "KEY\tCACHED\tSUMMARY")
			for _, e := range out.Entries {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, relTime(e.Cached, now), e.Summary)
			}
			return nil
		},
	}
}

func newCacheFillCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JQL   string
		Limit int
	}

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Prefetch summaries for a JQL query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.CacheSummariesUseCase().Execute(cmd.Context(), usecase.CacheSummariesInput{
				JQL:        opts.JQL,
				MaxResults: opts.Limit,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cached %d summaries\n", out.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.JQL, "jql", "", "JQL query (default: [list] jql)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of issues (default: [list] max_results)")

	return requiresTracker(cmd)
}

func newCacheClearCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.ClearCacheUseCase().Execute(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	}
}

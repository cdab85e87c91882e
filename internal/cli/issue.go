package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase"
)

// Output formats of the show command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// newListCommand creates the list command for searching issues.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JQL   string
		Limit int
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues matching a JQL query",
		Long: `List issues matching a JQL query.

Without --jql the [list] jql setting is used. Every returned summary is
stored in the local summary cache.

Output format is tab-separated with columns:
  KEY, STATUS, ASSIGNEE, PRIORITY, UPDATED, SUMMARY

Examples:
  # List issues with the configured query
  jiractl list

  # List open bugs in a project
  jiractl list --jql "project = ABC AND type = Bug AND statusCategory != Done"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListIssuesUseCase().Execute(cmd.Context(), usecase.ListIssuesInput{
				JQL:        opts.JQL,
				MaxResults: opts.Limit,
			})
			if err != nil {
				return err
			}
			printIssueList(cmd.OutOrStdout(), out.Issues, c.Clock.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.JQL, "jql", "", "JQL query (default: [list] jql)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of issues (default: [list] max_results)")

	return requiresTracker(cmd)
}

// printIssueList prints issues in TSV format.
func printIssueList(w io.Writer, issues []*domain.Issue, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "KEY\tSTATUS\tASSIGNEE\tPRIORITY\tUPDATED\tSUMMARY")
	for _, issue := range issues {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			issue.Key,
			orDash(issue.Status.Name),
			issue.Assignee.Name(),
			orDash(issue.Priority),
			relTime(issue.Updated, now),
			issue.Summary,
		)
	}
}

// newShowCommand creates the show command for displaying issue details.
func newShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format     string
		SkipExtras bool
	}

	cmd := &cobra.Command{
		Use:   "show [key]",
		Short: "Display issue details",
		Long: `Display an issue with its comments, worklogs and watchers.

If no key is provided, it is detected from the current branch name.

Examples:
  # Show an issue
  jiractl show ABC-123

  # Show the issue of the current branch as YAML
  jiractl show --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(opts.Format))
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.Format)
			}

			key, err := resolveIssueKey(cmd.Context(), c, args)
			if err != nil {
				return err
			}

			out, err := c.ShowIssueUseCase().Execute(cmd.Context(), usecase.ShowIssueInput{
				Key:        key,
				SkipExtras: opts.SkipExtras,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(newIssueView(out, c.BrowseURL(key)))
			case formatYAML:
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(newIssueView(out, c.BrowseURL(key))); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			}
			printIssueDetails(w, out, c.Clock.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "o", formatText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.SkipExtras, "no-extras", false, "Skip comments, worklogs and watchers")

	return requiresTracker(cmd)
}

// issueView is the structured output of the show command.
type issueView struct {
	Created     time.Time     `json:"created" yaml:"created"`
	Updated     time.Time     `json:"updated" yaml:"updated"`
	Watchers    *watchersView `json:"watchers,omitempty" yaml:"watchers,omitempty"`
	Assignee    *domain.User  `json:"assignee" yaml:"assignee"`
	Reporter    *domain.User  `json:"reporter,omitempty" yaml:"reporter,omitempty"`
	Key         string        `json:"key" yaml:"key"`
	URL         string        `json:"url" yaml:"url"`
	Summary     string        `json:"summary" yaml:"summary"`
	Status      string        `json:"status" yaml:"status"`
	Category    string        `json:"statusCategory" yaml:"statusCategory"`
	Type        string        `json:"type" yaml:"type"`
	Priority    string        `json:"priority,omitempty" yaml:"priority,omitempty"`
	Resolution  string        `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Parent      string        `json:"parent,omitempty" yaml:"parent,omitempty"`
	Description string        `json:"description" yaml:"description"`
	Labels      []string      `json:"labels" yaml:"labels"`
	Comments    []commentView `json:"comments" yaml:"comments"`
	Worklogs    []worklogView `json:"worklogs" yaml:"worklogs"`
}

type commentView struct {
	Created time.Time `json:"created" yaml:"created"`
	ID      string    `json:"id" yaml:"id"`
	Author  string    `json:"author" yaml:"author"`
	Body    string    `json:"body" yaml:"body"`
}

type worklogView struct {
	Started   time.Time `json:"started" yaml:"started"`
	ID        string    `json:"id" yaml:"id"`
	Author    string    `json:"author" yaml:"author"`
	TimeSpent string    `json:"timeSpent" yaml:"timeSpent"`
	Comment   string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Seconds   int       `json:"timeSpentSeconds" yaml:"timeSpentSeconds"`
}

type watchersView struct {
	Users      []string `json:"users" yaml:"users"`
	Count      int      `json:"count" yaml:"count"`
	IsWatching bool     `json:"isWatching" yaml:"isWatching"`
}

func newIssueView(out *usecase.ShowIssueOutput, url string) issueView {
	issue := out.Issue
	v := issueView{
		Created:     issue.Created,
		Updated:     issue.Updated,
		Assignee:    issue.Assignee,
		Reporter:    issue.Reporter,
		Key:         string(issue.Key),
		URL:         url,
		Summary:     issue.Summary,
		Status:      issue.Status.Name,
		Category:    string(issue.Status.Category),
		Type:        issue.Type,
		Priority:    issue.Priority,
		Resolution:  issue.Resolution,
		Parent:      string(issue.Parent),
		Description: issue.Description.PlainText(),
		Labels:      issue.Labels,
		Comments:    make([]commentView, 0, len(out.Comments)),
		Worklogs:    make([]worklogView, 0, len(out.Worklogs)),
	}
	if v.Labels == nil {
		v.Labels = []string{}
	}
	for _, cm := range out.Comments {
		v.Comments = append(v.Comments, commentView{
			Created: cm.Created,
			ID:      cm.ID,
			Author:  cm.Author.Name(),
			Body:    cm.Body.PlainText(),
		})
	}
	for _, wl := range out.Worklogs {
		v.Worklogs = append(v.Worklogs, worklogView{
			Started:   wl.Started,
			ID:        wl.ID,
			Author:    wl.Author.Name(),
			TimeSpent: domain.FormatWorklogDuration(wl.TimeSpentSeconds),
			Comment:   wl.Comment,
			Seconds:   wl.TimeSpentSeconds,
		})
	}
	if out.Watchers != nil {
		v.Watchers = &watchersView{Count: out.Watchers.Count, IsWatching: out.Watchers.IsWatching, Users: []string{}}
		for _, u := range out.Watchers.Users {
			v.Watchers.Users = append(v.Watchers.Users, u.Name())
		}
	}
	return v
}

// printIssueDetails prints the text form of the show command.
func printIssueDetails(w io.Writer, out *usecase.ShowIssueOutput, now time.Time) {
	issue := out.Issue

	_, _ = fmt.Fprintf(w, "# %s\n\n", domain.CommentDraftHeader(issue.Key, issue.Summary))

	_, _ = fmt.Fprintf(w, "Status: %s\n", orDash(issue.Status.Name))
	_, _ = fmt.Fprintf(w, "Type: %s\n", orDash(issue.Type))
	_, _ = fmt.Fprintf(w, "Priority: %s\n", orDash(issue.Priority))
	_, _ = fmt.Fprintf(w, "Assignee: %s\n", issue.Assignee.Name())
	if issue.Reporter != nil {
		_, _ = fmt.Fprintf(w, "Reporter: %s\n", issue.Reporter.Name())
	}
	if issue.Resolution != "" {
		_, _ = fmt.Fprintf(w, "Resolution: %s\n", issue.Resolution)
	}
	if issue.Parent != "" {
		_, _ = fmt.Fprintf(w, "Parent: %s\n", issue.Parent)
	}
	if len(issue.Labels) > 0 {
		_, _ = fmt.Fprintf(w, "Labels: [%s]\n", strings.Join(issue.Labels, ", "))
	} else {
		_, _ = fmt.Fprintln(w, "Labels: none")
	}
	_, _ = fmt.Fprintf(w, "Created: %s\n", relTime(issue.Created, now))
	_, _ = fmt.Fprintf(w, "Updated: %s\n", relTime(issue.Updated, now))

	if !issue.Description.IsEmpty() {
		_, _ = fmt.Fprintf(w, "\n%s\n", issue.Description.PlainText())
	}

	if len(out.Comments) > 0 {
		_, _ = fmt.Fprintf(w, "\nComments (%d):\n", len(out.Comments))
		printComments(w, out.Comments, now)
	}

	if len(out.Worklogs) > 0 {
		total := 0
		for _, wl := range out.Worklogs {
			total += wl.TimeSpentSeconds
		}
		_, _ = fmt.Fprintf(w, "\nWorklogs (%d, %s):\n", len(out.Worklogs), domain.FormatWorklogDuration(total))
		for _, wl := range out.Worklogs {
			line := fmt.Sprintf("  %s  %s  %s", wl.Author.Name(), domain.FormatWorklogDuration(wl.TimeSpentSeconds), relTime(wl.Started, now))
			if wl.Comment != "" {
				line += "  " + oneLine(wl.Comment)
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}

	if out.Watchers != nil && out.Watchers.Count > 0 {
		watching := ""
		if out.Watchers.IsWatching {
			watching = " (including you)"
		}
		_, _ = fmt.Fprintf(w, "\nWatchers: %d%s\n", out.Watchers.Count, watching)
	}
}

// newUpdateCommand creates the update command for editing issue fields.
func newUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Summary      string
		Description  string
		Priority     string
		Assignee     string
		Labels       string
		AddLabels    []string
		RemoveLabels []string
	}

	cmd := &cobra.Command{
		Use:   "update [key]",
		Short: "Edit issue fields",
		Long: `Edit the summary, description, priority, assignee or labels of an issue.

Only the flags given are changed. --assignee accepts an account id,
"me" for yourself or "none" to unassign.

Examples:
  # Assign the current branch's issue to yourself
  jiractl update --assignee me

  # Raise priority and tag the issue
  jiractl update ABC-123 --priority High --add-label regression

  # Replace all labels (an empty value removes every label)
  jiractl update ABC-123 --labels "backend,auth"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveIssueKey(cmd.Context(), c, args)
			if err != nil {
				return err
			}

			in := usecase.UpdateIssueInput{
				Key:          key,
				AddLabels:    usecase.SplitLabels(strings.Join(opts.AddLabels, ",")),
				RemoveLabels: usecase.SplitLabels(strings.Join(opts.RemoveLabels, ",")),
			}
			flags := cmd.Flags()
			if flags.Changed("summary") {
				in.Summary = &opts.Summary
			}
			if flags.Changed("description") {
				in.Description = &opts.Description
			}
			if flags.Changed("priority") {
				in.Priority = &opts.Priority
			}
			if flags.Changed("assignee") {
				in.Assignee = &opts.Assignee
			}
			if flags.Changed("labels") {
				in.Labels = usecase.SplitLabels(opts.Labels)
				in.SetLabels = true
			}

			if _, err := c.UpdateIssueUseCase().Execute(cmd.Context(), in); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Summary, "summary", "s", "", "New summary")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description (plain text)")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Priority name")
	cmd.Flags().StringVarP(&opts.Assignee, "assignee", "a", "", `Account id, "me" or "none"`)
	cmd.Flags().StringVar(&opts.Labels, "labels", "", "Replace labels (comma-separated)")
	cmd.Flags().StringArrayVar(&opts.AddLabels, "add-label", nil, "Add a label (can specify multiple)")
	cmd.Flags().StringArrayVar(&opts.RemoveLabels, "remove-label", nil, "Remove a label (can specify multiple)")

	return requiresTracker(cmd)
}

// newUsersCommand creates the users command for finding assignable users.
func newUsersCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Query string
		Limit int
	}

	cmd := &cobra.Command{
		Use:   "users [key]",
		Short: "Find users assignable to an issue",
		Long: `Find users that can be assigned to an issue, best match first.

The ACCOUNT ID column is what update --assignee expects.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveIssueKey(cmd.Context(), c, args)
			if err != nil {
				return err
			}
			out, err := c.FindUsersUseCase().Execute(cmd.Context(), usecase.FindUsersInput{
				Key:   key,
				Query: opts.Query,
				Limit: opts.Limit,
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()
			_, _ = fmt.Fprintln(tw, "ACCOUNT ID\tNAME\tEMAIL")
			for _, u := range out.Users {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", u.AccountID, u.Name(), orDash(u.Email))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Name to search for")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of users (0 = no limit)")

	return requiresTracker(cmd)
}

// newCurrentCommand creates the current command for printing the branch's issue key.
func newCurrentCommand(c *app.Container) *cobra.Command {
	var opts struct {
		URL bool
	}

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the issue key of the current branch",
		Long: `Print the issue key found in the current git branch name.

A branch such as feature/abc-123-login yields ABC-123.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.CurrentIssueUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if opts.URL {
				if c.AppConfig.Jira.URL == "" {
					return domain.ErrNotConfigured
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.BrowseURL(out.Key))
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Key)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.URL, "url", false, "Print the browse URL instead of the key")

	return cmd
}

// newOpenCommand creates the open command for viewing an issue in the browser.
func newOpenCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "open [key]",
		Short: "Open an issue in the browser",
		Long: `Open the web page of an issue.

$BROWSER is used when set, otherwise the platform opener (xdg-open, open).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveIssueKey(cmd.Context(), c, args)
			if err != nil {
				return err
			}
			out, err := c.OpenIssueUseCase().Execute(cmd.Context(), usecase.OpenIssueInput{Key: key})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", out.URL)
			return nil
		},
	}
}

// resolveIssueKey parses the key argument or detects it from the current branch.
func resolveIssueKey(ctx context.Context, c *app.Container, args []string) (domain.IssueKey, error) {
	if len(args) > 0 {
		return domain.ParseIssueKey(args[0])
	}
	out, err := c.CurrentIssueUseCase().Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("issue key is required: %w", err)
	}
	return out.Key, nil
}

// resolveIssueKeys parses every key argument, or detects one from the current branch.
func resolveIssueKeys(ctx context.Context, c *app.Container, args []string) ([]domain.IssueKey, error) {
	if len(args) > 0 {
		return domain.ParseIssueKeys(args)
	}
	key, err := resolveIssueKey(ctx, c, nil)
	if err != nil {
		return nil, err
	}
	return []domain.IssueKey{key}, nil
}

// relTime renders t relative to now, or "-" when unset.
func relTime(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

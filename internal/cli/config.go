package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage jiractl configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration,
including values taken from JIRA_* environment variables. The API token is
masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.LocalConfig} {
				if info.Path == "" {
					continue
				}
				if info.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			for _, warning := range out.Effective.Warnings {
				_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
			}
			if len(out.Effective.Warnings) > 0 {
				_, _ = fmt.Fprintln(w)
			}

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

// effectiveConfig mirrors domain.Config for display: durations as strings
// and the token masked.
type effectiveConfig struct {
	Jira struct {
		URL        string  `toml:"url"`
		Email      string  `toml:"email"`
		Token      string  `toml:"token"`
		AuthType   string  `toml:"auth_type"`
		APITimeout string  `toml:"api_timeout"`
		RateLimit  float64 `toml:"rate_limit"`
	} `toml:"jira"`
	List struct {
		JQL        string `toml:"jql"`
		MaxResults int    `toml:"max_results"`
	} `toml:"list"`
	Worklog struct {
		DefaultComment string `toml:"default_comment"`
	} `toml:"worklog"`
	Bulk struct {
		RefreshDelay string `toml:"refresh_delay"`
		Notify       bool   `toml:"notify"`
	} `toml:"bulk"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// formatEffectiveConfig formats the effective config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	var view effectiveConfig
	view.Jira.URL = cfg.Jira.URL
	view.Jira.Email = cfg.Jira.Email
	view.Jira.Token = cfg.Jira.MaskedToken()
	view.Jira.AuthType = string(cfg.Jira.AuthType)
	view.Jira.APITimeout = cfg.Jira.APITimeout.String()
	view.Jira.RateLimit = cfg.Jira.RateLimit
	view.List.JQL = cfg.List.JQL
	view.List.MaxResults = cfg.List.MaxResults
	view.Worklog.DefaultComment = cfg.Worklog.DefaultComment
	view.Bulk.RefreshDelay = cfg.Bulk.RefreshDelay.String()
	view.Bulk.Notify = cfg.Bulk.Notify
	view.Log.Level = cfg.Log.Level

	if err := toml.NewEncoder(w).Encode(view); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output the commented configuration template with default values to stdout.

It does not read existing configuration files and works even if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(nil))
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var opts struct {
		URL      string
		Email    string
		AuthType string
		Force    bool
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the global configuration file",
		Long: `Create the global configuration file from the template.

The API token is never written to the file. Export it as JIRA_API_TOKEN.

Examples:
  # Jira Cloud
  jiractl config init --url https://example.atlassian.net --email me@example.com

  # Jira Data Center with a personal access token
  jiractl config init --url https://jira.example.com --auth-type bearer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				URL:      opts.URL,
				Email:    opts.Email,
				AuthType: domain.AuthType(opts.AuthType),
				Force:    opts.Force,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "Jira base URL")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Account email for basic auth")
	cmd.Flags().StringVar(&opts.AuthType, "auth-type", string(domain.AuthBasic), "Authentication type (basic, bearer)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

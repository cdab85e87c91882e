package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Jira     JiraConfig    `toml:"jira"`
	List     ListConfig    `toml:"list"`
	Worklog  WorklogConfig `toml:"worklog"`
	Log      LogConfig     `toml:"log"`
	Bulk     BulkConfig    `toml:"bulk"`
}

// AuthType selects how requests are authenticated.
type AuthType string

const (
	AuthBasic  AuthType = "basic"  // email + API token (Jira Cloud)
	AuthBearer AuthType = "bearer" // personal access token (Jira Data Center)
)

// JiraConfig holds connection settings from the [jira] section.
type JiraConfig struct {
	URL        string        `toml:"url,omitempty"`
	Email      string        `toml:"email,omitempty"`
	Token      string        `toml:"token,omitempty"`
	AuthType   AuthType      `toml:"auth_type,omitempty"`
	APITimeout time.Duration `toml:"api_timeout,omitempty"`
	RateLimit  float64       `toml:"rate_limit,omitempty"` // requests per second
}

// IsConfigured reports whether enough is set to talk to a server.
func (j JiraConfig) IsConfigured() bool {
	if j.URL == "" || j.Token == "" {
		return false
	}
	if j.AuthType == AuthBearer {
		return true
	}
	return j.Email != ""
}

// MaskedToken returns the token with everything but the last four characters hidden.
func (j JiraConfig) MaskedToken() string {
	if j.Token == "" {
		return ""
	}
	if len(j.Token) <= 4 {
		return strings.Repeat("*", len(j.Token))
	}
	return strings.Repeat("*", len(j.Token)-4) + j.Token[len(j.Token)-4:]
}

// ListConfig holds issue list settings from the [list] section.
type ListConfig struct {
	JQL        string `toml:"jql,omitempty"`
	MaxResults int    `toml:"max_results,omitempty"`
}

// BulkConfig holds bulk transition settings from the [bulk] section.
type BulkConfig struct {
	// RefreshDelay is how long to wait after a bulk transition is accepted
	// before the list is refreshed; the server applies it asynchronously.
	RefreshDelay time.Duration `toml:"refresh_delay,omitempty"`
	Notify       bool          `toml:"notify,omitempty"`
}

// WorklogConfig holds worklog settings from the [worklog] section.
type WorklogConfig struct {
	// DefaultComment is used when the issue summary is not cached.
	DefaultComment string `toml:"default_comment,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// Configuration defaults.
const (
	DefaultJQL          = "assignee = currentUser() AND resolution = Unresolved ORDER BY updated DESC"
	DefaultMaxResults   = 50
	DefaultRefreshDelay = 1500 * time.Millisecond
	DefaultAPITimeout   = 30 * time.Second
	DefaultRateLimit    = 10.0
	DefaultLogLevel     = "info"
)

// File and directory names.
const (
	AppDirName          = "jiractl"
	ConfigFileName      = "config.toml"
	LocalConfigFileName = ".jiractl.toml"
	CacheFileName       = "issues.json"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Jira: JiraConfig{
			AuthType:   AuthBasic,
			APITimeout: DefaultAPITimeout,
			RateLimit:  DefaultRateLimit,
		},
		List: ListConfig{
			JQL:        DefaultJQL,
			MaxResults: DefaultMaxResults,
		},
		Bulk: BulkConfig{
			RefreshDelay: DefaultRefreshDelay,
			Notify:       true,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks values that would make requests fail and records warnings
// for values that were replaced by defaults.
func (c *Config) Validate() error {
	switch c.Jira.AuthType {
	case "", AuthBasic, AuthBearer:
	default:
		return fmt.Errorf("auth_type %q: %w", c.Jira.AuthType, ErrInvalidConfig)
	}
	if c.Jira.AuthType == "" {
		c.Jira.AuthType = AuthBasic
	}
	if c.Jira.URL != "" && !strings.HasPrefix(c.Jira.URL, "http://") && !strings.HasPrefix(c.Jira.URL, "https://") {
		return fmt.Errorf("url %q must start with http:// or https://: %w", c.Jira.URL, ErrInvalidConfig)
	}
	c.Jira.URL = strings.TrimRight(c.Jira.URL, "/")
	if c.List.MaxResults <= 0 || c.List.MaxResults > 100 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("list.max_results %d out of range, using %d", c.List.MaxResults, DefaultMaxResults))
		c.List.MaxResults = DefaultMaxResults
	}
	if c.Bulk.RefreshDelay < 0 {
		c.Warnings = append(c.Warnings, "bulk.refresh_delay is negative, using default")
		c.Bulk.RefreshDelay = DefaultRefreshDelay
	}
	return nil
}

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the per-repository config path.
func LocalConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, LocalConfigFileName)
}

// CachePath returns the summary cache path.
// cacheHome is typically XDG_CACHE_HOME or ~/.cache.
func CachePath(cacheHome string) string {
	return filepath.Join(cacheHome, AppDirName, CacheFileName)
}

// LogDir returns the log directory.
// stateHome is typically XDG_STATE_HOME or ~/.local/state.
func LogDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, "logs")
}

// IssueLogPath returns the path to the per-issue log file.
func IssueLogPath(logDir string, key IssueKey) string {
	return filepath.Join(logDir, fmt.Sprintf("issue-%s.log", key))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, "jiractl.log")
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	data := struct {
		URL          string
		Email        string
		AuthType     string
		JQL          string
		LogLevel     string
		RefreshDelay string
		APITimeout   string
		MaxResults   int
		Notify       bool
	}{
		URL:          cfg.Jira.URL,
		Email:        cfg.Jira.Email,
		AuthType:     string(cfg.Jira.AuthType),
		JQL:          cfg.List.JQL,
		LogLevel:     cfg.Log.Level,
		RefreshDelay: cfg.Bulk.RefreshDelay.String(),
		APITimeout:   cfg.Jira.APITimeout.String(),
		MaxResults:   cfg.List.MaxResults,
		Notify:       cfg.Bulk.Notify,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}

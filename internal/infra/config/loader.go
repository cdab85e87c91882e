// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/jiractl/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	environ       map[string]string // nil reads the process environment
	repoRoot      string            // Directory holding .jiractl.toml; empty outside a repository
	globalConfDir string            // Path to global config directory (e.g., ~/.config/jiractl)
}

// NewLoader creates a new Loader.
func NewLoader(repoRoot string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory and environment. This is useful for testing.
func NewLoaderWithGlobalDir(repoRoot, globalConfDir string, environ map[string]string) *Loader {
	if environ == nil {
		environ = map[string]string{}
	}
	return &Loader{
		environ:       environ,
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// envConfig holds the environment overrides.
type envConfig struct {
	URL      string `env:"JIRA_URL"`
	Email    string `env:"JIRA_EMAIL"`
	Token    string `env:"JIRA_API_TOKEN"`
	AuthType string `env:"JIRA_AUTH_TYPE"`
	JQL      string `env:"JIRACTL_JQL"`
	LogLevel string `env:"JIRACTL_LOG_LEVEL"`
}

// Load returns the merged configuration.
// Precedence: default <- global <- local (.jiractl.toml) <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	var paths []string
	if l.globalConfDir != "" {
		paths = append(paths, filepath.Join(l.globalConfDir, domain.ConfigFileName))
	}
	if l.repoRoot != "" {
		paths = append(paths, domain.LocalConfigPath(l.repoRoot))
	}

	for _, path := range paths {
		raw, err := loadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg.Warnings = append(cfg.Warnings, applyRaw(cfg, raw)...)
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: l.environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if ec.URL != "" {
		cfg.Jira.URL = ec.URL
	}
	if ec.Email != "" {
		cfg.Jira.Email = ec.Email
	}
	if ec.Token != "" {
		cfg.Jira.Token = ec.Token
	}
	if ec.AuthType != "" {
		cfg.Jira.AuthType = domain.AuthType(ec.AuthType)
	}
	if ec.JQL != "" {
		cfg.List.JQL = ec.JQL
	}
	if ec.LogLevel != "" {
		cfg.Log.Level = ec.LogLevel
	}
	return nil
}

// loadFile reads a TOML file into a raw map.
func loadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// applyRaw overwrites cfg with every key present in raw and returns warnings
// for unknown keys and values of the wrong type.
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string
	invalid := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("invalid value for [%s] %s", section, key))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "jira":
			for k, v := range m {
				switch k {
				case "url":
					setString(&cfg.Jira.URL, v, func() { invalid(section, k) })
				case "email":
					setString(&cfg.Jira.Email, v, func() { invalid(section, k) })
				case "token":
					setString(&cfg.Jira.Token, v, func() { invalid(section, k) })
				case "auth_type":
					var s string
					setString(&s, v, func() { invalid(section, k) })
					if s != "" {
						cfg.Jira.AuthType = domain.AuthType(s)
					}
				case "api_timeout":
					if d, ok := toDuration(v); ok && d > 0 {
						cfg.Jira.APITimeout = d
					} else {
						invalid(section, k)
					}
				case "rate_limit":
					if f, ok := toFloat(v); ok && f > 0 {
						cfg.Jira.RateLimit = f
					} else {
						invalid(section, k)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [jira]: %s", k))
				}
			}
		case "list":
			for k, v := range m {
				switch k {
				case "jql":
					setString(&cfg.List.JQL, v, func() { invalid(section, k) })
				case "max_results":
					if n, ok := v.(int64); ok {
						cfg.List.MaxResults = int(n)
					} else {
						invalid(section, k)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [list]: %s", k))
				}
			}
		case "bulk":
			for k, v := range m {
				switch k {
				case "refresh_delay":
					if d, ok := toDuration(v); ok {
						cfg.Bulk.RefreshDelay = d
					} else {
						invalid(section, k)
					}
				case "notify":
					if b, ok := v.(bool); ok {
						cfg.Bulk.Notify = b
					} else {
						invalid(section, k)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [bulk]: %s", k))
				}
			}
		case "worklog":
			for k, v := range m {
				switch k {
				case "default_comment":
					setString(&cfg.Worklog.DefaultComment, v, func() { invalid(section, k) })
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [worklog]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(&cfg.Log.Level, v, func() { invalid(section, k) })
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	return warnings
}

func setString(dst *string, v any, onInvalid func()) {
	s, ok := v.(string)
	if !ok {
		onInvalid()
		return
	}
	*dst = s
}

// toDuration accepts a Go duration string ("1.5s") or a number of seconds.
func toDuration(v any) (time.Duration, bool) {
	switch x := v.(type) {
	case string:
		d, err := time.ParseDuration(x)
		if err != nil || d < 0 {
			return 0, false
		}
		return d, true
	case int64:
		return time.Duration(x) * time.Second, x >= 0
	case float64:
		return time.Duration(x * float64(time.Second)), x >= 0
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

package domain

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, AuthBasic, cfg.Jira.AuthType)
	assert.Equal(t, DefaultJQL, cfg.List.JQL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Bulk.RefreshDelay)
	assert.True(t, cfg.Bulk.Notify)
	assert.False(t, cfg.Jira.IsConfigured())
}

func TestJiraConfig_IsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  JiraConfig
		want bool
	}{
		{"basic complete", JiraConfig{URL: "https://x", Email: "a@b", Token: "t", AuthType: AuthBasic}, true},
		{"basic without email", JiraConfig{URL: "https://x", Token: "t", AuthType: AuthBasic}, false},
		{"bearer without email", JiraConfig{URL: "https://x", Token: "t", AuthType: AuthBearer}, true},
		{"missing token", JiraConfig{URL: "https://x", Email: "a@b"}, false},
		{"missing url", JiraConfig{Email: "a@b", Token: "t"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.IsConfigured())
		})
	}
}

func TestJiraConfig_MaskedToken(t *testing.T) {
	assert.Equal(t, "", JiraConfig{}.MaskedToken())
	assert.Equal(t, "***", JiraConfig{Token: "abc"}.MaskedToken())
	assert.Equal(t, "******7890", JiraConfig{Token: "1234567890"}.MaskedToken())
}

func TestConfig_Validate(t *testing.T) {
	t.Run("trims url and fills auth type", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Jira.URL = "https://example.atlassian.net/"
		cfg.Jira.AuthType = ""
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "https://example.atlassian.net", cfg.Jira.URL)
		assert.Equal(t, AuthBasic, cfg.Jira.AuthType)
	})

	t.Run("rejects unknown auth type", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Jira.AuthType = "oauth"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("rejects url without scheme", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Jira.URL = "example.atlassian.net"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("out of range max results becomes a warning", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.List.MaxResults = 500
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultMaxResults, cfg.List.MaxResults)
		require.Len(t, cfg.Warnings, 1)
		assert.Contains(t, cfg.Warnings[0], "max_results")
	})
}

func TestRenderConfigTemplate_IsValidTOML(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Jira.URL = "https://example.atlassian.net"
	cfg.Jira.Email = "dev@example.com"

	out := RenderConfigTemplate(cfg)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &raw))
	jira, ok := raw["jira"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://example.atlassian.net", jira["url"])
	assert.Equal(t, "dev@example.com", jira["email"])

	bulk, ok := raw["bulk"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1.5s", bulk["refresh_delay"])
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/home/u/.config/jiractl/config.toml", GlobalConfigPath("/home/u/.config"))
	assert.Equal(t, "/repo/.jiractl.toml", LocalConfigPath("/repo"))
	assert.Equal(t, "/c/jiractl/issues.json", CachePath("/c"))
	assert.Equal(t, "/s/jiractl/logs/issue-AB-1.log", IssueLogPath(LogDir("/s"), "AB-1"))
	assert.Equal(t, "/s/jiractl/logs/jiractl.log", GlobalLogPath(LogDir("/s")))
	assert.Equal(t, "https://x/browse/AB-1", BrowseURL("https://x/", "AB-1"))
	assert.Equal(t, "AB-1: Fix it", CommentDraftHeader("AB-1", "Fix it"))
	assert.Equal(t, "AB-1", CommentDraftHeader("AB-1", ""))
}

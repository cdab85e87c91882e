package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/testutil"
	"github.com/runoshun/jiractl/internal/usecase"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns both config infos and effective config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.LocalInfo = domain.ConfigInfo{
			Path:    "/test/repo/.jiractl.toml",
			Content: "[list]\njql = \"project = ABC\"",
			Exists:  true,
		}
		manager.GlobalInfo = domain.ConfigInfo{
			Path:    "/home/test/.config/jiractl/config.toml",
			Content: "[log]\nlevel = \"debug\"",
			Exists:  true,
		}
		loader := testutil.NewMockConfigLoader()
		loader.Config.List.JQL = "project = ABC"

		out, err := usecase.NewShowConfig(manager, loader).Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, manager.LocalInfo, out.LocalConfig)
		assert.Equal(t, manager.GlobalInfo, out.GlobalConfig)
		assert.Equal(t, "project = ABC", out.Effective.List.JQL)
	})

	t.Run("load error", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.LoadErr = domain.ErrInvalidConfig

		_, err := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader).Execute(context.Background())

		require.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}

func TestInitConfig_Execute(t *testing.T) {
	t.Run("writes template with connection settings", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		out, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{
			URL:   " https://example.atlassian.net/ ",
			Email: "dev@example.com",
			Force: true,
		})

		require.NoError(t, err)
		assert.Equal(t, manager.GlobalInfo.Path, out.Path)
		assert.True(t, manager.InitForce)
		require.NotNil(t, manager.InitConfig)
		assert.Equal(t, "https://example.atlassian.net", manager.InitConfig.Jira.URL)
		assert.Equal(t, "dev@example.com", manager.InitConfig.Jira.Email)
		assert.Equal(t, domain.AuthBasic, manager.InitConfig.Jira.AuthType)
		assert.Empty(t, manager.InitConfig.Jira.Token)
	})

	t.Run("existing file", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitGlobalErr = domain.ErrConfigExists

		_, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{})

		require.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("invalid auth type", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		_, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{AuthType: "oauth"})

		require.ErrorIs(t, err, domain.ErrInvalidConfig)
		assert.False(t, manager.InitGlobalCalled)
	})
}

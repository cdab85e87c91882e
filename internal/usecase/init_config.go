package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	URL      string
	Email    string
	AuthType domain.AuthType // Defaults to basic
	Force    bool            // Overwrite an existing file
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig writes the global configuration template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute renders the template with the given connection settings.
// The API token is never written; it is read from JIRA_API_TOKEN.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := domain.NewDefaultConfig()
	cfg.Jira.URL = strings.TrimRight(strings.TrimSpace(in.URL), "/")
	cfg.Jira.Email = strings.TrimSpace(in.Email)
	if in.AuthType != "" {
		cfg.Jira.AuthType = in.AuthType
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path, err := uc.configManager.InitGlobalConfig(cfg, in.Force)
	if err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}
	return &InitConfigOutput{Path: path}, nil
}

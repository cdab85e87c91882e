package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/jiractl/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	repoRoot      string // Directory holding .jiractl.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/jiractl)
}

// NewManager creates a new Manager.
func NewManager(repoRoot string) *Manager {
	return &Manager{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(repoRoot, globalConfDir string) *Manager {
	return &Manager{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return readConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// LocalConfigInfo returns information about the per-repository config file.
func (m *Manager) LocalConfigInfo() domain.ConfigInfo {
	if m.repoRoot == "" {
		return domain.ConfigInfo{}
	}
	return readConfigInfo(domain.LocalConfigPath(m.repoRoot))
}

// readConfigInfo reads a config file and returns its info.
func readConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitGlobalConfig writes the commented config template rendered with cfg's
// values. An existing file is kept unless force is set.
func (m *Manager) InitGlobalConfig(cfg *domain.Config, force bool) (string, error) {
	if m.globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !force {
		return path, domain.ErrConfigExists
	}

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	// The token may be in the file, keep it private.
	if err := os.WriteFile(path, []byte(domain.RenderConfigTemplate(cfg)), 0o600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

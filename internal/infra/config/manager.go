package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/jira-reports/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	projectDir    string // Directory holding jira-reports.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/jira-reports)
}

// NewManager creates a new Manager.
func NewManager(projectDir string) *Manager {
	return &Manager{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(projectDir, globalConfDir string) *Manager {
	return &Manager{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// GetProjectConfigInfo returns information about the project config file.
func (m *Manager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.getConfigInfo(domain.ProjectConfigPath(m.projectDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{
			Path:   "",
			Exists: false,
		}
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)
	return m.getConfigInfo(path)
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
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

// InitProjectConfig creates a project config file with default template.
func (m *Manager) InitProjectConfig(cfg *domain.Config) error {
	return m.initConfig(domain.ProjectConfigPath(m.projectDir), cfg)
}

// InitGlobalConfig creates a global config file with default template.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(m.globalConfDir, 0700); err != nil {
		return err
	}

	return m.initConfig(path, cfg)
}

// initConfig creates a config file with default template.
func (m *Manager) initConfig(path string, cfg *domain.Config) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}

	content := domain.RenderConfigTemplate(cfg)

	return os.WriteFile(path, []byte(content), 0600)
}

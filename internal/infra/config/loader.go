// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/jira-reports/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectDir    string // Directory holding jira-reports.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/jira-reports)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
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

// Load returns the merged configuration (project + global).
// Project config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	// Merge: default <- global <- project (later takes precedence)
	cfg := domain.NewDefaultConfig()

	if !opts.IgnoreGlobal && l.globalConfDir != "" {
		path := filepath.Join(l.globalConfDir, domain.ConfigFileName)
		if err := mergeFile(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if !opts.IgnoreProject {
		path := domain.ProjectConfigPath(l.projectDir)
		if err := mergeFile(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if cfg.Log.Dir == "" && l.globalConfDir != "" {
		cfg.Log.Dir = filepath.Join(l.globalConfDir, "logs")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile decodes the file at path on top of cfg.
// Keys present in the file replace the current values; absent keys are left alone.
func mergeFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	warnings := cfg.Warnings
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.Warnings = append(warnings, unknownKeys(filepath.Base(path), raw)...)
	return nil
}

// knownKeys lists the keys accepted in each section.
var knownKeys = map[string]map[string]bool{
	"jira": {
		"server": true, "user": true, "token_env": true, "auth": true, "api": true, "timeout": true,
		"rate_limit": true, "page_size": true, "burst": true, "max_retries": true, "concurrency": true,
	},
	"output": {
		"dir": true, "formats": true, "excel_name": true, "word_name": true, "template_name": true,
		"landscape": true, "cell_color": true, "header_color": true,
	},
	"extract": {"on_error": true},
	"log":     {"level": true, "dir": true},
}

// unknownKeys returns a sorted warning per unknown section or key.
func unknownKeys(file string, raw map[string]any) []string {
	var warnings []string
	for section, value := range raw {
		keys, ok := knownKeys[section]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: unknown section: %s", file, section))
			continue
		}
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: %s must be a table", file, section))
			continue
		}
		for k := range m {
			if !keys[k] {
				warnings = append(warnings, fmt.Sprintf("%s: unknown key in [%s]: %s", file, section, k))
			}
		}
	}
	sort.Strings(warnings)
	return warnings
}

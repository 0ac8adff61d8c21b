// Package usecase contains the application use cases.
package usecase

import (
	"context"

	"github.com/runoshun/jira-reports/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective     *domain.Config    // Merged configuration
	GlobalConfig  domain.ConfigInfo // Global config file info
	ProjectConfig domain.ConfigInfo // Project config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information and the effective configuration.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}
	return &ShowConfigOutput{
		Effective:     cfg,
		GlobalConfig:  uc.configManager.GetGlobalConfigInfo(),
		ProjectConfig: uc.configManager.GetProjectConfigInfo(),
	}, nil
}

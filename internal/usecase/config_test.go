package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/runoshun/jira-reports/internal/testutil"
	"github.com/runoshun/jira-reports/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns both config infos and effective config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.ProjectConfigInfo = domain.ConfigInfo{
			Path:    "/work/jira-reports.toml",
			Content: "[jira]\nserver = \"https://jira\"",
			Exists:  true,
		}
		manager.GlobalConfigInfo = domain.ConfigInfo{
			Path:    "/home/test/.config/jira-reports/config.toml",
			Content: "[log]\nlevel = \"debug\"",
			Exists:  true,
		}
		loader := testutil.NewMockConfigLoader()
		loader.Config.Jira.Server = "https://jira"

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, "/work/jira-reports.toml", out.ProjectConfig.Path)
		assert.True(t, out.ProjectConfig.Exists)
		assert.Equal(t, "[log]\nlevel = \"debug\"", out.GlobalConfig.Content)
		assert.Equal(t, "https://jira", out.Effective.Jira.Server)
	})

	t.Run("returns loader error", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.Err = errors.New("broken toml")

		uc := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.EqualError(t, err, "broken toml")
	})
}

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates project config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Config: domain.NewDefaultConfig()})

		require.NoError(t, err)
		assert.Equal(t, "/work/jira-reports.toml", out.Path)
		assert.True(t, manager.InitProjectCalled)
		assert.False(t, manager.InitGlobalCalled)
	})

	t.Run("creates global config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Config: domain.NewDefaultConfig(), Global: true})

		require.NoError(t, err)
		assert.Equal(t, "/home/test/.config/jira-reports/config.toml", out.Path)
		assert.False(t, manager.InitProjectCalled)
		assert.True(t, manager.InitGlobalCalled)
	})

	t.Run("returns error when config already exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitProjectErr = domain.ErrConfigExists

		uc := usecase.NewInitConfig(manager)
		_, err := uc.Execute(context.Background(), usecase.InitConfigInput{Config: domain.NewDefaultConfig()})

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("rejects nil config", func(t *testing.T) {
		uc := usecase.NewInitConfig(testutil.NewMockConfigManager())
		_, err := uc.Execute(context.Background(), usecase.InitConfigInput{})

		assert.ErrorIs(t, err, domain.ErrConfigNil)
	})
}

func TestShowConfigTemplate_Execute(t *testing.T) {
	tests := []struct {
		name         string
		input        usecase.ShowConfigTemplateInput
		wantErr      error
		wantContains []string
	}{
		{
			name:         "default config",
			input:        usecase.ShowConfigTemplateInput{Config: domain.NewDefaultConfig()},
			wantContains: []string{"[jira]", "[output]", "[extract]", "[log]", `on_error = "abort"`},
		},
		{
			name:    "nil config",
			input:   usecase.ShowConfigTemplateInput{},
			wantErr: domain.ErrConfigNil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := usecase.NewShowConfigTemplate().Execute(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.wantContains {
				assert.Contains(t, out.Template, s)
			}
		})
	}
}

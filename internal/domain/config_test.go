package domain

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig_IsValid(t *testing.T) {
	cfg := NewDefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultTokenEnv, cfg.Jira.TokenEnv)
	assert.Equal(t, []string{FormatExcel, FormatWord}, cfg.Output.Formats)
	assert.Equal(t, OnErrorAbort, cfg.Extract.OnError)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"auth", func(c *Config) { c.Jira.Auth = "oauth" }},
		{"api", func(c *Config) { c.Jira.API = "graphql" }},
		{"on_error", func(c *Config) { c.Extract.OnError = "retry" }},
		{"formats", func(c *Config) { c.Output.Formats = []string{"pdf"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestJiraConfig_TimeoutDuration(t *testing.T) {
	assert.Equal(t, DefaultTimeout, JiraConfig{}.TimeoutDuration())
	assert.Equal(t, DefaultTimeout, JiraConfig{Timeout: "soon"}.TimeoutDuration())
	assert.Equal(t, 5*time.Second, JiraConfig{Timeout: "5s"}.TimeoutDuration())
}

func TestRenderConfigTemplate_IsValidTOML(t *testing.T) {
	content := RenderConfigTemplate(NewDefaultConfig())

	var parsed map[string]any
	require.NoError(t, toml.Unmarshal([]byte(content), &parsed))
	assert.Contains(t, content, `token_env = "JIRA_API_TOKEN"`)
	assert.Contains(t, content, `formats = ["excel", "word"]`)
	assert.Contains(t, content, `on_error = "abort"`)
}

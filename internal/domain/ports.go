package domain

import "context"

// IssueSearcher runs queries against the tracking server.
type IssueSearcher interface {
	// Search returns the issues matching jql. A limit of 0 fetches every match.
	Search(ctx context.Context, jql string, limit int) ([]Issue, error)

	// GetIssue fetches a single issue by key. Returns ErrIssueNotFound if it does not exist.
	GetIssue(ctx context.Context, key string) (*Issue, error)
}

// DefinitionLoader reads report definition files.
type DefinitionLoader interface {
	// Load parses and validates the definition at path.
	Load(path string) (*ReportDefinition, error)
}

// ExcelWriter writes a report as a spreadsheet.
type ExcelWriter interface {
	WriteExcel(report *Report, path string) error
}

// WordOptions tunes generated Word documents.
type WordOptions struct {
	CellColor string // Header cell shading, e.g. "#85B1ED"
	Landscape bool
}

// WordWriter writes a report as a Word document.
type WordWriter interface {
	// WriteWord creates a new document at path.
	WriteWord(report *Report, path string, opts WordOptions) error

	// FillTemplate copies templatePath to path, filling tables located by keyword.
	// It returns a warning for every report table that was skipped or truncated.
	FillTemplate(report *Report, templatePath, path string) ([]TemplateWarning, error)
}

// TemplateWarning reports a report table that was not placed in full into a template.
type TemplateWarning struct {
	Err   error // ErrTemplateTableNotFound or ErrTemplateRowTruncated
	Table string
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (global + project).
	Load() (*Config, error)

	// LoadWithOptions returns the merged configuration, ignoring the selected sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	GetGlobalConfigInfo() ConfigInfo
	GetProjectConfigInfo() ConfigInfo
	InitGlobalConfig(cfg *Config) error
	InitProjectConfig(cfg *Config) error
}

// Logger writes operational log lines.
// An empty report name logs to the global log only.
type Logger interface {
	Info(report, category, msg string)
	Debug(report, category, msg string)
	Warn(report, category, msg string)
	Error(report, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

// Info implements Logger.
func (NopLogger) Info(_, _, _ string) {}

// Debug implements Logger.
func (NopLogger) Debug(_, _, _ string) {}

// Warn implements Logger.
func (NopLogger) Warn(_, _, _ string) {}

// Error implements Logger.
func (NopLogger) Error(_, _, _ string) {}

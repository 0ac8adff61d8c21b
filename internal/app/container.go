// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/runoshun/jira-reports/internal/infra/config"
	"github.com/runoshun/jira-reports/internal/infra/definition"
	"github.com/runoshun/jira-reports/internal/infra/docx"
	"github.com/runoshun/jira-reports/internal/infra/jira"
	"github.com/runoshun/jira-reports/internal/infra/logging"
	"github.com/runoshun/jira-reports/internal/infra/xlsx"
	"github.com/runoshun/jira-reports/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir string // Directory holding the project config file
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
// Fields are ordered to minimize memory padding.
type Container struct {
	// Ports (interfaces bound to implementations)
	Definitions   domain.DefinitionLoader
	Excel         domain.ExcelWriter
	Word          domain.WordWriter
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	Log       *slog.Logger // Operator messages on stderr
	AppConfig *domain.Config

	// The searcher needs credentials, so it is built on first use
	newSearcher func() (domain.IssueSearcher, error)
	searcher    domain.IssueSearcher
	searcherErr error
	closer      func() error

	Config       Config
	searcherOnce sync.Once
}

// New creates a new Container for the given working directory.
func New(dir string) (*Container, error) {
	cfg := Config{WorkDir: dir}

	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		// Use defaults; commands needing the config reload it and report the error
		appConfig = domain.NewDefaultConfig()
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	logger := logging.New(appConfig.Log.Dir, level)

	c := &Container{
		Definitions:   definition.NewLoader(),
		Excel:         xlsx.NewWriter(appConfig.Output.HeaderColor),
		Word:          docx.NewWriter(),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Logger:        logger,
		Log:           slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		AppConfig:     appConfig,
		closer:        logger.Close,
		Config:        cfg,
	}
	c.newSearcher = func() (domain.IssueSearcher, error) {
		return jira.NewSearcherFromConfig(c.AppConfig.Jira, os.Getenv, nil)
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, searcher domain.IssueSearcher, defs domain.DefinitionLoader,
	excel domain.ExcelWriter, word domain.WordWriter, logger domain.Logger,
) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		Definitions: defs,
		Excel:       excel,
		Word:        word,
		Logger:      logger,
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AppConfig:   appConfig,
		newSearcher: func() (domain.IssueSearcher, error) { return searcher, nil },
		Config:      cfg,
	}
}

// Searcher returns the issue searcher, creating it on first call.
func (c *Container) Searcher() (domain.IssueSearcher, error) {
	c.searcherOnce.Do(func() {
		c.searcher, c.searcherErr = c.newSearcher()
	})
	return c.searcher, c.searcherErr
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// UseCase factory methods

// BuildReportUseCase returns a new BuildReport use case.
func (c *Container) BuildReportUseCase() (*usecase.BuildReport, error) {
	searcher, err := c.Searcher()
	if err != nil {
		return nil, err
	}
	return usecase.NewBuildReport(c.Definitions, searcher, c.Logger), nil
}

// GenerateReportUseCase returns a new GenerateReport use case.
func (c *Container) GenerateReportUseCase() (*usecase.GenerateReport, error) {
	build, err := c.BuildReportUseCase()
	if err != nil {
		return nil, err
	}
	return usecase.NewGenerateReport(build, c.Excel, c.Word, c.Logger), nil
}

// PreviewReportUseCase returns a new PreviewReport use case.
func (c *Container) PreviewReportUseCase() (*usecase.PreviewReport, error) {
	build, err := c.BuildReportUseCase()
	if err != nil {
		return nil, err
	}
	return usecase.NewPreviewReport(build), nil
}

// ValidateDefinitionUseCase returns a new ValidateDefinition use case.
func (c *Container) ValidateDefinitionUseCase() *usecase.ValidateDefinition {
	return usecase.NewValidateDefinition(c.Definitions)
}

// InspectIssueUseCase returns a new InspectIssue use case.
func (c *Container) InspectIssueUseCase() (*usecase.InspectIssue, error) {
	searcher, err := c.Searcher()
	if err != nil {
		return nil, err
	}
	return usecase.NewInspectIssue(searcher), nil
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

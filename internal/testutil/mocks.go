// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/jira-reports/internal/domain"
)

// SearchCall records one Search invocation.
type SearchCall struct {
	JQL   string
	Limit int
}

// MockIssueSearcher is a test double for domain.IssueSearcher.
// It is safe for concurrent use.
// Fields are ordered to minimize memory padding.
type MockIssueSearcher struct {
	Results  map[string][]domain.Issue // Issues returned per JQL
	Errors   map[string]error          // Errors returned per JQL
	Issues   map[string]*domain.Issue  // Issues returned by GetIssue per key
	GetErr   error
	calls    []SearchCall
	Delay    time.Duration // Time each Search takes
	mu       sync.Mutex
	inFlight int
	maxSeen  int
}

// NewMockIssueSearcher creates a new MockIssueSearcher with initialized maps.
func NewMockIssueSearcher() *MockIssueSearcher {
	return &MockIssueSearcher{
		Results: make(map[string][]domain.Issue),
		Errors:  make(map[string]error),
		Issues:  make(map[string]*domain.Issue),
	}
}

// Ensure MockIssueSearcher implements domain.IssueSearcher interface.
var _ domain.IssueSearcher = (*MockIssueSearcher)(nil)

// Search returns the configured issues for jql, honoring limit.
func (m *MockIssueSearcher) Search(ctx context.Context, jql string, limit int) ([]domain.Issue, error) {
	m.mu.Lock()
	m.calls = append(m.calls, SearchCall{JQL: jql, Limit: limit})
	m.inFlight++
	if m.inFlight > m.maxSeen {
		m.maxSeen = m.inFlight
	}
	err := m.Errors[jql]
	issues := m.Results[jql]
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(m.Delay):
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}
	return append([]domain.Issue{}, issues...), nil
}

// GetIssue returns the configured issue for key.
func (m *MockIssueSearcher) GetIssue(_ context.Context, key string) (*domain.Issue, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	issue, ok := m.Issues[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrIssueNotFound, key)
	}
	return issue, nil
}

// Calls returns the recorded Search calls.
func (m *MockIssueSearcher) Calls() []SearchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SearchCall{}, m.calls...)
}

// MaxConcurrent returns the highest number of overlapping Search calls seen.
func (m *MockIssueSearcher) MaxConcurrent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxSeen
}

// MockDefinitionLoader is a test double for domain.DefinitionLoader.
type MockDefinitionLoader struct {
	Definition *domain.ReportDefinition
	Err        error
	LoadedPath string
}

// Ensure MockDefinitionLoader implements domain.DefinitionLoader interface.
var _ domain.DefinitionLoader = (*MockDefinitionLoader)(nil)

// Load records the path and returns the configured definition.
func (m *MockDefinitionLoader) Load(path string) (*domain.ReportDefinition, error) {
	m.LoadedPath = path
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Definition, nil
}

// MockExcelWriter is a test double for domain.ExcelWriter.
type MockExcelWriter struct {
	Err    error
	Report *domain.Report
	Path   string
	Called bool
}

// Ensure MockExcelWriter implements domain.ExcelWriter interface.
var _ domain.ExcelWriter = (*MockExcelWriter)(nil)

// WriteExcel records the call and returns the configured error.
func (m *MockExcelWriter) WriteExcel(report *domain.Report, path string) error {
	m.Called = true
	m.Report = report
	m.Path = path
	return m.Err
}

// MockWordWriter is a test double for domain.WordWriter.
// Fields are ordered to minimize memory padding.
type MockWordWriter struct {
	WriteErr        error
	TemplateErr     error
	Report          *domain.Report
	Path            string
	TemplatePath    string
	TemplateOutPath string
	Warnings        []domain.TemplateWarning
	Options         domain.WordOptions
	WriteCalled     bool
	TemplateCalled  bool
}

// Ensure MockWordWriter implements domain.WordWriter interface.
var _ domain.WordWriter = (*MockWordWriter)(nil)

// WriteWord records the call and returns the configured error.
func (m *MockWordWriter) WriteWord(report *domain.Report, path string, opts domain.WordOptions) error {
	m.WriteCalled = true
	m.Report = report
	m.Path = path
	m.Options = opts
	return m.WriteErr
}

// FillTemplate records the call and returns the configured warnings and error.
func (m *MockWordWriter) FillTemplate(report *domain.Report, templatePath, path string) ([]domain.TemplateWarning, error) {
	m.TemplateCalled = true
	m.Report = report
	m.TemplatePath = templatePath
	m.TemplateOutPath = path
	if m.TemplateErr != nil {
		return nil, m.TemplateErr
	}
	return m.Warnings, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	ProjectConfigInfo domain.ConfigInfo
	GlobalConfigInfo  domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ProjectConfigInfo: domain.ConfigInfo{
			Path:   "/work/jira-reports.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/jira-reports/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitProjectConfig records the call and returns configured error.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config) error {
	m.InitProjectCalled = true
	return m.InitProjectErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// LogEntry is one line captured by MockLogger.
type LogEntry struct {
	Level    string
	Report   string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
// It is safe for concurrent use.
type MockLogger struct {
	entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, report, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Report: report, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(report, category, msg string) { m.record("INFO", report, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(report, category, msg string) { m.record("DEBUG", report, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(report, category, msg string) { m.record("WARN", report, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(report, category, msg string) { m.record("ERROR", report, category, msg) }

// Entries returns the recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry{}, m.entries...)
}

// EntriesAt returns the recorded entries of one level.
func (m *MockLogger) EntriesAt(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config      *domain.Config
	Err         error
	LastOptions domain.LoadConfigOptions
}

// NewMockConfigLoader creates a MockConfigLoader returning default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config, or defaults when none is set.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	return m.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions records opts and returns the configured config.
func (m *MockConfigLoader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	m.LastOptions = opts
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

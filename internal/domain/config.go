package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Jira search API flavors.
const (
	APIServer = "server" // /rest/api/2/search, startAt paging
	APICloud  = "cloud"  // /rest/api/3/search/jql, nextPageToken paging
)

// Jira auth schemes.
const (
	AuthBasic  = "basic"
	AuthBearer = "bearer"
)

// Output formats.
const (
	FormatExcel = "excel"
	FormatWord  = "word"
)

// Extraction error policies.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Defaults.
const (
	DefaultTokenEnv     = "JIRA_API_TOKEN"
	DefaultPageSize     = 100
	MaxPageSize         = 100
	DefaultRateLimit    = 10.0
	DefaultBurst        = 5
	DefaultMaxRetries   = 3
	DefaultTimeout      = 30 * time.Second
	DefaultConcurrency  = 4
	DefaultExcelName    = "jira_excel"
	DefaultWordName     = "jira_word"
	DefaultTemplateName = "jira_word_template"
	DefaultCellColor    = "#85B1ED"
	DefaultHeaderColor  = "#D8E4BC"
	DefaultLogLevel     = "info"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Jira     JiraConfig    `toml:"jira"`
	Output   OutputConfig  `toml:"output"`
	Extract  ExtractConfig `toml:"extract"`
	Log      LogConfig     `toml:"log"`
}

// JiraConfig holds the [jira] section.
type JiraConfig struct {
	Server      string  `toml:"server,omitempty"`
	User        string  `toml:"user,omitempty"`
	TokenEnv    string  `toml:"token_env,omitempty"` // Environment variable holding the token or password
	Auth        string  `toml:"auth,omitempty"`      // "basic" (default) or "bearer"
	API         string  `toml:"api,omitempty"`       // "server" (default) or "cloud"
	Timeout     string  `toml:"timeout,omitempty"`   // Go duration, e.g. "30s"
	RateLimit   float64 `toml:"rate_limit,omitempty"`
	PageSize    int     `toml:"page_size,omitempty"`
	Burst       int     `toml:"burst,omitempty"`
	MaxRetries  int     `toml:"max_retries,omitempty"`
	Concurrency int     `toml:"concurrency,omitempty"`
}

// TimeoutDuration returns the parsed request timeout, or the default when unset or invalid.
func (c JiraConfig) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// OutputConfig holds the [output] section.
type OutputConfig struct {
	Dir          string   `toml:"dir,omitempty"`
	ExcelName    string   `toml:"excel_name,omitempty"`
	WordName     string   `toml:"word_name,omitempty"`
	TemplateName string   `toml:"template_name,omitempty"`
	CellColor    string   `toml:"cell_color,omitempty"`
	HeaderColor  string   `toml:"header_color,omitempty"`
	Formats      []string `toml:"formats,omitempty"`
	Landscape    bool     `toml:"landscape,omitempty"`
}

// ExtractConfig holds the [extract] section.
type ExtractConfig struct {
	OnError string `toml:"on_error,omitempty"` // "abort" (default) or "skip"
}

// LogConfig holds the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"`
	Dir   string `toml:"dir,omitempty"`
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// LoadConfigOptions selects which config sources are merged.
type LoadConfigOptions struct {
	IgnoreGlobal  bool
	IgnoreProject bool
}

// NewDefaultConfig returns the configuration used when no file sets a value.
func NewDefaultConfig() *Config {
	return &Config{
		Jira: JiraConfig{
			TokenEnv:    DefaultTokenEnv,
			Auth:        AuthBasic,
			API:         APIServer,
			Timeout:     DefaultTimeout.String(),
			RateLimit:   DefaultRateLimit,
			PageSize:    DefaultPageSize,
			Burst:       DefaultBurst,
			MaxRetries:  DefaultMaxRetries,
			Concurrency: DefaultConcurrency,
		},
		Output: OutputConfig{
			ExcelName:    DefaultExcelName,
			WordName:     DefaultWordName,
			TemplateName: DefaultTemplateName,
			CellColor:    DefaultCellColor,
			HeaderColor:  DefaultHeaderColor,
			Formats:      []string{FormatExcel, FormatWord},
		},
		Extract: ExtractConfig{OnError: OnErrorAbort},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	switch c.Jira.Auth {
	case AuthBasic, AuthBearer:
	default:
		return fmt.Errorf("invalid [jira].auth %q (want %q or %q)", c.Jira.Auth, AuthBasic, AuthBearer)
	}
	switch c.Jira.API {
	case APIServer, APICloud:
	default:
		return fmt.Errorf("invalid [jira].api %q (want %q or %q)", c.Jira.API, APIServer, APICloud)
	}
	switch c.Extract.OnError {
	case OnErrorAbort, OnErrorSkip:
	default:
		return fmt.Errorf("invalid [extract].on_error %q (want %q or %q)", c.Extract.OnError, OnErrorAbort, OnErrorSkip)
	}
	for _, f := range c.Output.Formats {
		if f != FormatExcel && f != FormatWord {
			return fmt.Errorf("invalid [output].formats entry %q", f)
		}
	}
	return nil
}

type templateData struct {
	TokenEnv     string
	Auth         string
	API          string
	Timeout      string
	ExcelName    string
	WordName     string
	TemplateName string
	CellColor    string
	HeaderColor  string
	OnError      string
	LogLevel     string
	Formats      string
	PageSize     int
	Concurrency  int
}

// RenderConfigTemplate renders a commented config file showing the values of cfg.
func RenderConfigTemplate(cfg *Config) string {
	quoted := make([]string, len(cfg.Output.Formats))
	for i, f := range cfg.Output.Formats {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	data := templateData{
		TokenEnv:     cfg.Jira.TokenEnv,
		Auth:         cfg.Jira.Auth,
		API:          cfg.Jira.API,
		Timeout:      cfg.Jira.Timeout,
		PageSize:     cfg.Jira.PageSize,
		Concurrency:  cfg.Jira.Concurrency,
		ExcelName:    cfg.Output.ExcelName,
		WordName:     cfg.Output.WordName,
		TemplateName: cfg.Output.TemplateName,
		CellColor:    cfg.Output.CellColor,
		HeaderColor:  cfg.Output.HeaderColor,
		Formats:      "[" + strings.Join(quoted, ", ") + "]",
		OnError:      cfg.Extract.OnError,
		LogLevel:     cfg.Log.Level,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}

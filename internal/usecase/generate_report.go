package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/runoshun/jira-reports/internal/domain"
)

// GenerateReportInput contains the parameters for generating report documents.
// Fields are ordered to minimize memory padding.
type GenerateReportInput struct {
	DefinitionPath string
	OutDir         string   // Directory receiving the documents
	TemplatePath   string   // Word template to fill (optional)
	ExcelName      string   // Excel file name without extension
	WordName       string   // Word file name without extension
	TemplateName   string   // Filled template file name without extension
	Formats        []string // domain.FormatExcel and/or domain.FormatWord
	Word           domain.WordOptions
	Concurrency    int
	SkipErrors     bool
}

// GenerateReportOutput contains the result of generating documents.
type GenerateReportOutput struct {
	RunID           string
	Paths           []string // Written documents, in write order
	TemplateWarnings []domain.TemplateWarning // Tables skipped or truncated in the template
	Skipped         int
}

// GenerateReport builds a report and writes it in the requested formats.
type GenerateReport struct {
	build  *BuildReport
	excel  domain.ExcelWriter
	word   domain.WordWriter
	logger domain.Logger
}

// NewGenerateReport creates a new GenerateReport use case.
func NewGenerateReport(build *BuildReport, excel domain.ExcelWriter, word domain.WordWriter, logger domain.Logger) *GenerateReport {
	return &GenerateReport{
		build:  build,
		excel:  excel,
		word:   word,
		logger: logger,
	}
}

// Execute builds the report, then writes each requested document.
func (uc *GenerateReport) Execute(ctx context.Context, in GenerateReportInput) (*GenerateReportOutput, error) {
	formats, err := normalizeFormats(in.Formats)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 && in.TemplatePath == "" {
		return nil, domain.ErrNoOutputFormat
	}

	built, err := uc.build.Execute(ctx, BuildReportInput{
		DefinitionPath: in.DefinitionPath,
		RunID:          uuid.NewString(),
		Concurrency:    in.Concurrency,
		SkipErrors:     in.SkipErrors,
	})
	if err != nil {
		return nil, err
	}
	report := built.Report
	out := &GenerateReportOutput{RunID: built.RunID, Skipped: built.Skipped}

	if slices.Contains(formats, domain.FormatExcel) {
		path := domain.OutputPath(in.OutDir, nameOr(in.ExcelName, domain.DefaultExcelName), ".xlsx")
		if err := uc.excel.WriteExcel(report, path); err != nil {
			return nil, fmt.Errorf("write excel: %w", err)
		}
		uc.logger.Info(report.Name, "write", fmt.Sprintf("run %s: wrote %s", built.RunID, path))
		out.Paths = append(out.Paths, path)
	}

	if slices.Contains(formats, domain.FormatWord) {
		path := domain.OutputPath(in.OutDir, nameOr(in.WordName, domain.DefaultWordName), ".docx")
		if err := uc.word.WriteWord(report, path, in.Word); err != nil {
			return nil, fmt.Errorf("write word: %w", err)
		}
		uc.logger.Info(report.Name, "write", fmt.Sprintf("run %s: wrote %s", built.RunID, path))
		out.Paths = append(out.Paths, path)
	}

	if in.TemplatePath != "" {
		path := domain.OutputPath(in.OutDir, nameOr(in.TemplateName, domain.DefaultTemplateName), ".docx")
		warnings, err := uc.word.FillTemplate(report, in.TemplatePath, path)
		if err != nil {
			return nil, fmt.Errorf("fill template: %w", err)
		}
		for _, w := range warnings {
			uc.logger.Warn(report.Name, "write", fmt.Sprintf("run %s: table %q: %v", built.RunID, w.Table, w.Err))
		}
		uc.logger.Info(report.Name, "write", fmt.Sprintf("run %s: wrote %s", built.RunID, path))
		out.Paths = append(out.Paths, path)
		out.TemplateWarnings = warnings
	}

	return out, nil
}

// normalizeFormats lowercases and deduplicates formats, rejecting unknown ones.
func normalizeFormats(formats []string) ([]string, error) {
	var out []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case domain.FormatExcel, domain.FormatWord:
		default:
			return nil, fmt.Errorf("unknown output format %q", f)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

package usecase

import (
	"context"

	"github.com/runoshun/jira-reports/internal/domain"
)

// PreviewReportInput contains the parameters for previewing a report.
type PreviewReportInput struct {
	DefinitionPath string
	Table          int // 1-based table to preview (0 = all tables)
	Concurrency    int
	SkipErrors     bool
}

// PreviewReportOutput contains the report to render on screen.
type PreviewReportOutput struct {
	Report  *domain.Report
	RunID   string
	Skipped int
}

// PreviewReport builds a report without writing any document.
type PreviewReport struct {
	build *BuildReport
}

// NewPreviewReport creates a new PreviewReport use case.
func NewPreviewReport(build *BuildReport) *PreviewReport {
	return &PreviewReport{build: build}
}

// Execute builds the selected tables.
func (uc *PreviewReport) Execute(ctx context.Context, in PreviewReportInput) (*PreviewReportOutput, error) {
	built, err := uc.build.Execute(ctx, BuildReportInput{
		DefinitionPath: in.DefinitionPath,
		Table:          in.Table,
		Concurrency:    in.Concurrency,
		SkipErrors:     in.SkipErrors,
	})
	if err != nil {
		return nil, err
	}
	return &PreviewReportOutput{Report: built.Report, RunID: built.RunID, Skipped: built.Skipped}, nil
}

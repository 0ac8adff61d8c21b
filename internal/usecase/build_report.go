package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/runoshun/jira-reports/internal/domain"
	"golang.org/x/sync/errgroup"
)

// BuildReportInput contains the parameters for building a report.
// Fields are ordered to minimize memory padding.
type BuildReportInput struct {
	DefinitionPath string // Report definition file (XML or YAML)
	RunID          string // Correlates log lines (optional, generated when empty)
	Table          int    // 1-based table to build (0 = all tables)
	Concurrency    int    // Maximum parallel queries (0 = default)
	SkipErrors     bool   // Drop issues that fail extraction instead of aborting
}

// BuildReportOutput contains the built report.
type BuildReportOutput struct {
	Report  *domain.Report
	RunID   string
	Skipped int // Issues dropped because extraction failed (SkipErrors only)
}

// BuildReport loads a definition, runs its queries and extracts the rows.
type BuildReport struct {
	loader   domain.DefinitionLoader
	searcher domain.IssueSearcher
	logger   domain.Logger
}

// NewBuildReport creates a new BuildReport use case.
func NewBuildReport(loader domain.DefinitionLoader, searcher domain.IssueSearcher, logger domain.Logger) *BuildReport {
	return &BuildReport{
		loader:   loader,
		searcher: searcher,
		logger:   logger,
	}
}

// plannedTable is a table definition with its resolved columns.
type plannedTable struct {
	def  domain.TableDef
	spec domain.ColumnSpec
}

// Execute builds the report.
// Queries run in parallel; rows are extracted afterwards in definition order.
func (uc *BuildReport) Execute(ctx context.Context, in BuildReportInput) (*BuildReportOutput, error) {
	def, err := uc.loader.Load(in.DefinitionPath)
	if err != nil {
		return nil, err
	}

	tables, err := selectTables(def, in.Table)
	if err != nil {
		return nil, err
	}

	runID := in.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	uc.logger.Info(def.Name, "build", fmt.Sprintf("run %s: building %d table(s) from %s", runID, len(tables), in.DefinitionPath))

	planned := make([]plannedTable, len(tables))
	for i, t := range tables {
		spec, err := domain.ResolveColumns(t.Columns)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}
		planned[i] = plannedTable{def: t, spec: spec}
	}

	fetched, err := uc.fetch(ctx, def.Name, runID, planned, in.Concurrency)
	if err != nil {
		uc.logger.Error(def.Name, "fetch", fmt.Sprintf("run %s: %v", runID, err))
		return nil, err
	}

	report := &domain.Report{Name: def.Name, Tables: make([]domain.TableData, 0, len(planned))}
	skipped := 0
	for i, p := range planned {
		table := domain.TableData{
			Name:    p.def.Name,
			Keyword: p.def.Keyword,
			Style:   p.def.Style,
			Headers: p.spec.Headers(),
			Groups:  make([]domain.RowGroup, 0, len(fetched[i])),
		}
		for _, g := range fetched[i] {
			rows, n, err := uc.extract(def.Name, runID, g.issues, p.spec, in.SkipErrors)
			if err != nil {
				uc.logger.Error(def.Name, "extract", fmt.Sprintf("run %s: table %q: %v", runID, p.def.Name, err))
				return nil, fmt.Errorf("table %q: %w", p.def.Name, err)
			}
			skipped += n
			table.Groups = append(table.Groups, domain.RowGroup{Name: g.name, Rows: rows})
		}
		uc.logger.Info(def.Name, "extract", fmt.Sprintf("run %s: table %q: %d row(s)", runID, table.Name, table.RowCount()))
		report.Tables = append(report.Tables, table)
	}

	if skipped > 0 {
		uc.logger.Warn(def.Name, "extract", fmt.Sprintf("run %s: skipped %d issue(s)", runID, skipped))
	}
	return &BuildReportOutput{Report: report, RunID: runID, Skipped: skipped}, nil
}

// selectTables returns every table, or only the 1-based table n.
func selectTables(def *domain.ReportDefinition, n int) ([]domain.TableDef, error) {
	if n == 0 {
		return def.Tables, nil
	}
	if n < 0 || n > len(def.Tables) {
		return nil, fmt.Errorf("%w: table %d (definition has %d)", domain.ErrTableNotFound, n, len(def.Tables))
	}
	return def.Tables[n-1 : n], nil
}

// fetchedGroup is the query result of one row group.
type fetchedGroup struct {
	name   string
	issues []domain.Issue
}

// fetch runs every query of the planned tables with at most concurrency in flight.
// The result is indexed by table, then by group, in definition order.
func (uc *BuildReport) fetch(ctx context.Context, report, runID string, planned []plannedTable, concurrency int) ([][]fetchedGroup, error) {
	if concurrency <= 0 {
		concurrency = domain.DefaultConcurrency
	}
	results := make([][]fetchedGroup, len(planned))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, p := range planned {
		i, p := i, p
		switch p.def.Style {
		case domain.StyleMultipleJQL:
			results[i] = make([]fetchedGroup, len(p.def.Filters))
			for j, f := range p.def.Filters {
				j, f := j, f
				results[i][j].name = f.Name
				g.Go(func() error {
					issues, err := uc.search(ctx, report, runID, f.JQL, 0)
					results[i][j].issues = issues
					return err
				})
			}
		case domain.StyleLinkOneTicket:
			results[i] = make([]fetchedGroup, 1)
			g.Go(func() error {
				issues, err := uc.searchLinked(ctx, report, runID, p.def)
				results[i][0].issues = issues
				return err
			})
		default:
			results[i] = make([]fetchedGroup, 1)
			g.Go(func() error {
				issues, err := uc.search(ctx, report, runID, p.def.JQL, 0)
				results[i][0].issues = issues
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *BuildReport) search(ctx context.Context, report, runID, jql string, limit int) ([]domain.Issue, error) {
	issues, err := uc.searcher.Search(ctx, jql, limit)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug(report, "fetch", fmt.Sprintf("run %s: %d issue(s) for %q", runID, len(issues), jql))
	return issues, nil
}

// searchLinked resolves the anchor issue of a LinkOneTicket table, then lists
// the issues linked to it through the table's link verb.
func (uc *BuildReport) searchLinked(ctx context.Context, report, runID string, def domain.TableDef) ([]domain.Issue, error) {
	anchors, err := uc.search(ctx, report, runID, def.JQL, 1)
	if err != nil {
		return nil, err
	}
	if len(anchors) == 0 {
		uc.logger.Warn(report, "fetch", fmt.Sprintf("run %s: table %q: no issue matches %q", runID, def.Name, def.JQL))
		return []domain.Issue{}, nil
	}
	return uc.search(ctx, report, runID, domain.LinkedIssuesJQL(anchors[0].Key, def.Link), 0)
}

// extract converts issues to rows. With skipErrors, failing issues are logged
// and dropped; the number dropped is returned.
func (uc *BuildReport) extract(report, runID string, issues []domain.Issue, spec domain.ColumnSpec, skipErrors bool) ([]domain.RowRecord, int, error) {
	if !skipErrors {
		rows, err := domain.Extract(issues, spec)
		return rows, 0, err
	}

	rows := make([]domain.RowRecord, 0, len(issues))
	skipped := 0
	for _, issue := range issues {
		row, err := domain.ExtractRow(issue, spec)
		if err != nil {
			skipped++
			uc.logger.Warn(report, "extract", fmt.Sprintf("run %s: skipping: %v", runID, err))
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

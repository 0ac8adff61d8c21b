package cli

import (
	"fmt"
	"io"

	"github.com/runoshun/jira-reports/internal/app"
	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/runoshun/jira-reports/internal/usecase"
	"github.com/spf13/cobra"
)

// newPreviewCommand creates the preview command.
func newPreviewCommand(c *app.Container) *cobra.Command {
	var tableNum int
	var skipErrors bool

	cmd := &cobra.Command{
		Use:   "preview <definition>",
		Short: "Build a report and print its tables",
		Long: `Build the report described by a definition file and print the tables
to the terminal without writing any document.

Use --table to build a single table (1-based).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("skip-errors") {
				skipErrors = c.AppConfig.Extract.OnError == domain.OnErrorSkip
			}

			uc, err := c.PreviewReportUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.PreviewReportInput{
				DefinitionPath: args[0],
				Table:          tableNum,
				Concurrency:    c.AppConfig.Jira.Concurrency,
				SkipErrors:     skipErrors,
			})
			if err != nil {
				return err
			}

			renderReport(cmd.OutOrStdout(), out.Report)
			if out.Skipped > 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %d issue(s) that could not be extracted\n", out.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&tableNum, "table", "t", 0, "Only build this table (1-based)")
	cmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "Skip issues that cannot be extracted")

	return cmd
}

// renderReport prints every table of the report.
func renderReport(w io.Writer, report *domain.Report) {
	writeLine(w, titleStyle.Render(report.Name))
	for _, t := range report.Tables {
		writeLine(w, "")
		writeLine(w, titleStyle.Render(t.Name)+" "+mutedStyle.Render(fmt.Sprintf("(%s, %d row(s))", t.Style, t.RowCount())))
		if t.RowCount() == 0 && !t.Grouped() {
			writeLine(w, mutedStyle.Render("No rows."))
			continue
		}
		writeLine(w, renderTable(t))
	}
}

// renderTable lays out one table, with a heading row per group when grouped.
func renderTable(t domain.TableData) string {
	var rows [][]string
	groupRows := make(map[int]bool)
	for _, g := range t.Groups {
		if t.Grouped() {
			groupRows[len(rows)] = true
			heading := make([]string, len(t.Headers))
			if len(heading) > 0 {
				heading[0] = g.Name
			}
			rows = append(rows, heading)
		}
		for _, r := range g.Rows {
			values := r.Values()
			for i := range values {
				values[i] = clip(values[i], maxCellWidth)
			}
			rows = append(rows, values)
		}
	}
	return newTable(t.Headers, rows, groupRows).String()
}

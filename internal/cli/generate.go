package cli

import (
	"fmt"

	"github.com/runoshun/jira-reports/internal/app"
	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/runoshun/jira-reports/internal/usecase"
	"github.com/spf13/cobra"
)

// generateOptions holds the flags of the generate command.
// Fields are ordered to minimize memory padding.
type generateOptions struct {
	template     string
	excelName    string
	wordName     string
	templateName string
	cellColor    string
	outDir       string
	concurrency  int
	excel        bool
	word         bool
	landscape    bool
	skipErrors   bool
}

// newGenerateCommand creates the generate command.
func newGenerateCommand(c *app.Container) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <definition>",
		Short: "Build a report and write documents",
		Long: `Build the report described by a definition file and write it.

Without --excel or --word the formats listed in [output].formats are written.
With --template, the tables of the given Word document whose first data cell
holds a table keyword are filled as well.

Examples:
  # Excel and Word using the configured formats
  jira-reports generate release.xml

  # Only a landscape Word document in ./out
  jira-reports generate release.yaml --word --landscape --out-dir out

  # Fill a template
  jira-reports generate release.xml --template report-template.docx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.AppConfig

			formats := cfg.Output.Formats
			if opts.excel || opts.word {
				formats = nil
				if opts.excel {
					formats = append(formats, domain.FormatExcel)
				}
				if opts.word {
					formats = append(formats, domain.FormatWord)
				}
			}

			landscape := cfg.Output.Landscape
			if cmd.Flags().Changed("landscape") {
				landscape = opts.landscape
			}
			skipErrors := cfg.Extract.OnError == domain.OnErrorSkip
			if cmd.Flags().Changed("skip-errors") {
				skipErrors = opts.skipErrors
			}

			uc, err := c.GenerateReportUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.GenerateReportInput{
				DefinitionPath: args[0],
				OutDir:         stringOr(opts.outDir, cfg.Output.Dir),
				TemplatePath:   opts.template,
				ExcelName:      stringOr(opts.excelName, cfg.Output.ExcelName),
				WordName:       stringOr(opts.wordName, cfg.Output.WordName),
				TemplateName:   stringOr(opts.templateName, cfg.Output.TemplateName),
				Formats:        formats,
				Word: domain.WordOptions{
					CellColor: stringOr(opts.cellColor, cfg.Output.CellColor),
					Landscape: landscape,
				},
				Concurrency: intOr(opts.concurrency, cfg.Jira.Concurrency),
				SkipErrors:  skipErrors,
			})
			if err != nil {
				return err
			}

			for _, tw := range out.TemplateWarnings {
				c.Log.Warn("template table not filled in full", "table", tw.Table, "reason", tw.Err, "run", out.RunID)
			}
			if out.Skipped > 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %d issue(s) that could not be extracted\n", out.Skipped)
			}
			w := cmd.OutOrStdout()
			for _, p := range out.Paths {
				writeLine(w, successStyle.Render("Wrote "+p))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.excel, "excel", false, "Write an Excel workbook")
	cmd.Flags().BoolVar(&opts.word, "word", false, "Write a Word document")
	cmd.Flags().StringVar(&opts.template, "template", "", "Word template to fill")
	cmd.Flags().StringVar(&opts.excelName, "excel-name", "", "Excel file name (default from config)")
	cmd.Flags().StringVar(&opts.wordName, "word-name", "", "Word file name (default from config)")
	cmd.Flags().StringVar(&opts.templateName, "template-name", "", "Filled template file name (default from config)")
	cmd.Flags().BoolVar(&opts.landscape, "landscape", false, "Use landscape pages in the Word document")
	cmd.Flags().StringVar(&opts.cellColor, "cell-color", "", "Word header cell color, e.g. #85B1ED")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "Output directory")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Queries run in parallel (default from config)")
	cmd.Flags().BoolVar(&opts.skipErrors, "skip-errors", false, "Skip issues that cannot be extracted")

	return cmd
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

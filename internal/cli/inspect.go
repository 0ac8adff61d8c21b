package cli

import (
	"github.com/runoshun/jira-reports/internal/app"
	"github.com/runoshun/jira-reports/internal/usecase"
	"github.com/spf13/cobra"
)

// newInspectCommand creates the inspect command.
func newInspectCommand(c *app.Container) *cobra.Command {
	var filter string
	var full bool

	cmd := &cobra.Command{
		Use:   "inspect <issue-key>",
		Short: "List the field paths of an issue",
		Long: `Fetch one issue and list every field path with its value.

The paths can be used as column fields in report definitions, e.g.
"fields.status.name" is written "status.name".

Examples:
  jira-reports inspect PROJ-123
  jira-reports inspect PROJ-123 --filter version`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.InspectIssueUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.InspectIssueInput{
				Key:    args[0],
				Filter: filter,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			writeLine(w, titleStyle.Render(out.Key))
			if len(out.Fields) == 0 {
				writeLine(w, mutedStyle.Render("No matching fields."))
				return nil
			}
			width := maxCellWidth
			if full {
				width = 0
			}
			rows := make([][]string, len(out.Fields))
			for i, f := range out.Fields {
				rows[i] = []string{f.Path, clip(f.Value, width)}
			}
			writeLine(w, newTable([]string{"Path", "Value"}, rows, nil).String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show paths containing this text")
	cmd.Flags().BoolVar(&full, "full", false, "Do not shorten long values")

	return cmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/runoshun/jira-reports/internal/app"
	"github.com/runoshun/jira-reports/internal/usecase"
	"github.com/spf13/cobra"
)

// newValidateCommand creates the validate command.
func newValidateCommand(c *app.Container) *cobra.Command {
	var showColumns bool

	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Check a report definition",
		Long: `Parse a report definition and resolve every column without contacting Jira.

Prints the tables with their style, keyword and number of queries.
Use --columns to also list how each column is extracted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ValidateDefinitionUseCase().Execute(cmd.Context(), usecase.ValidateDefinitionInput{
				DefinitionPath: args[0],
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			writeLine(w, successStyle.Render(fmt.Sprintf("%s: OK", args[0])))
			writeLine(w, titleStyle.Render(out.Name))

			rows := make([][]string, len(out.Tables))
			for i, t := range out.Tables {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					t.Name,
					string(t.Style),
					t.Keyword,
					strconv.Itoa(t.Queries),
					strconv.Itoa(len(t.Columns)),
				}
			}
			writeLine(w, newTable([]string{"#", "Table", "Style", "Keyword", "Queries", "Columns"}, rows, nil).String())

			if !showColumns {
				return nil
			}
			for i, t := range out.Tables {
				writeLine(w, "")
				writeLine(w, titleStyle.Render(fmt.Sprintf("%d - %s", i+1, t.Name)))
				colRows := make([][]string, len(t.Columns))
				for j, col := range t.Columns {
					colRows[j] = []string{col.Header, col.Field, string(col.Mode)}
				}
				writeLine(w, newTable([]string{"Header", "Field", "Mode"}, colRows, nil).String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showColumns, "columns", false, "List the columns of each table")

	return cmd
}

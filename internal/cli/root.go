// Package cli provides the command-line interface for jira-reports.
package cli

import (
	"fmt"

	"github.com/runoshun/jira-reports/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupReport = "report"
	groupSetup  = "setup"
)

// NewRootCommand creates the root command for jira-reports.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "jira-reports",
		Short: "Generate Excel and Word reports from Jira queries",
		Long: `jira-reports builds tabular reports from Jira issues.

A report definition (XML or YAML) lists tables; each table names its JQL
queries and columns. The report is written as an Excel workbook, a Word
document, or into the tables of an existing Word template.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Config commands must work with broken config files
			if isConfigCommand(cmd) {
				return nil
			}

			// Skip if container has no loader (e.g. in tests)
			if c == nil || c.ConfigLoader == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			c.AppConfig = cfg
			return nil
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupReport, Title: "Report Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Report commands
	generateCmd := newGenerateCommand(c)
	generateCmd.GroupID = groupReport

	previewCmd := newPreviewCommand(c)
	previewCmd.GroupID = groupReport

	validateCmd := newValidateCommand(c)
	validateCmd.GroupID = groupReport

	inspectCmd := newInspectCommand(c)
	inspectCmd.GroupID = groupReport

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		generateCmd,
		previewCmd,
		validateCmd,
		inspectCmd,
		configCmd,
	)

	return root
}

// isConfigCommand reports whether cmd is "config" or one of its subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for p := cmd; p != nil; p = p.Parent() {
		if p.Name() == "config" {
			return true
		}
	}
	return false
}

package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand_ConfiguredFormats(t *testing.T) {
	// Setup
	c, deps := newTestContainer(t)
	outDir := t.TempDir()

	// Execute
	stdout, stderr, err := runRoot(t, c, "generate", "release.xml", "--out-dir", outDir)

	// Assert
	requireNoErr(t, err, stderr)
	assert.Equal(t, "release.xml", deps.loader.LoadedPath)
	assert.Equal(t, filepath.Join(outDir, "jira_excel.xlsx"), deps.excel.Path)
	assert.Equal(t, filepath.Join(outDir, "jira_word.docx"), deps.word.Path)
	assert.Equal(t, domain.DefaultCellColor, deps.word.Options.CellColor)
	assert.False(t, deps.word.TemplateCalled)
	assert.Contains(t, stdout, "Wrote "+deps.excel.Path)
	assert.Contains(t, stdout, "Wrote "+deps.word.Path)

	require.Len(t, deps.excel.Report.Tables, 2)
	assert.Equal(t, 1, deps.excel.Report.Tables[0].RowCount())
}

func TestGenerateCommand_FormatFlags(t *testing.T) {
	c, deps := newTestContainer(t)

	_, stderr, err := runRoot(t, c, "generate", "release.xml",
		"--word", "--word-name", "weekly", "--landscape", "--cell-color", "#FFFFFF", "-o", "out")

	requireNoErr(t, err, stderr)
	assert.False(t, deps.excel.Called)
	assert.Equal(t, filepath.Join("out", "weekly.docx"), deps.word.Path)
	assert.Equal(t, domain.WordOptions{CellColor: "#FFFFFF", Landscape: true}, deps.word.Options)
}

func TestGenerateCommand_Template(t *testing.T) {
	c, deps := newTestContainer(t)
	c.AppConfig.Output.Formats = nil
	deps.word.Warnings = []domain.TemplateWarning{{Table: "Per state", Err: domain.ErrTemplateTableNotFound}}

	stdout, stderr, err := runRoot(t, c, "generate", "release.xml", "--template", "tpl.docx", "--template-name", "filled")

	requireNoErr(t, err, stderr)
	assert.Equal(t, "tpl.docx", deps.word.TemplatePath)
	assert.Equal(t, "filled.docx", deps.word.TemplateOutPath)
	assert.False(t, deps.word.WriteCalled)
	assert.Contains(t, stdout, "Wrote filled.docx")
}

func TestGenerateCommand_NoFormat(t *testing.T) {
	c, _ := newTestContainer(t)
	c.AppConfig.Output.Formats = nil

	_, _, err := runRoot(t, c, "generate", "release.xml")

	require.ErrorIs(t, err, domain.ErrNoOutputFormat)
}

func TestGenerateCommand_SkipErrorsFromConfig(t *testing.T) {
	c, deps := newTestContainer(t)
	c.AppConfig.Extract.OnError = domain.OnErrorSkip
	deps.loader.Definition.Tables[0].Columns = append(deps.loader.Definition.Tables[0].Columns,
		domain.ColumnDef{Name: "Status", Field: "status.name"})

	_, stderr, err := runRoot(t, c, "generate", "release.xml", "--excel")

	requireNoErr(t, err, stderr)
	assert.Contains(t, stderr, "skipped 1 issue(s)")
	assert.Equal(t, 0, deps.excel.Report.Tables[0].RowCount())
}

func TestGenerateCommand_ExtractionErrorAborts(t *testing.T) {
	c, deps := newTestContainer(t)
	deps.loader.Definition.Tables[0].Columns = append(deps.loader.Definition.Tables[0].Columns,
		domain.ColumnDef{Name: "Status", Field: "status.name"})

	_, _, err := runRoot(t, c, "generate", "release.xml", "--excel")

	require.ErrorIs(t, err, domain.ErrFieldNotFound)
	assert.False(t, deps.excel.Called)
}

func TestGenerateCommand_SearchError(t *testing.T) {
	c, deps := newTestContainer(t)
	deps.searcher.Errors["type = Bug"] = errors.New("unauthorized")

	_, _, err := runRoot(t, c, "generate", "release.xml", "--excel")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestGenerateCommand_RequiresDefinition(t *testing.T) {
	c, _ := newTestContainer(t)

	_, _, err := runRoot(t, c, "generate")

	require.Error(t, err)
}

package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Report name="Release report">
  <Table name="Bugs" style="Classic" keyword="#BUGS#">
    <JQL>project = PROJ AND type = Bug</JQL>
    <Column name="Key" type="plain">key</Column>
    <Column name="Fix versions" type="multiple_values">fixVersions</Column>
    <Column name="Tested by" type="link">is tested by</Column>
    <Column name="Label" type="specific_summary">summary</Column>
  </Table>
  <Table name="Per state" style="MultipleJQL">
    <Filters>
      <JQL name="Open">project = PROJ AND status = Open</JQL>
      <JQL name="Closed">project = PROJ AND status = Closed</JQL>
    </Filters>
    <Column name="Summary">summary</Column>
  </Table>
  <Table name="Blockers" style="LinkOneTicket">
    <JQL link="is blocked by">key = PROJ-1</JQL>
    <Column name="Summary">summary</Column>
  </Table>
</Report>
`

const sampleYAML = `
name: Release report
tables:
  - name: Bugs
    style: Classic
    keyword: "#BUGS#"
    jql: project = PROJ AND type = Bug
    columns:
      - {name: Key, type: plain, field: key}
      - {name: Fix versions, type: multiple_values, field: fixVersions}
      - {name: Tested by, type: link, field: is tested by}
      - {name: Label, type: specific_summary, field: summary}
  - name: Per state
    style: MultipleJQL
    filters:
      - {name: Open, jql: project = PROJ AND status = Open}
      - {name: Closed, jql: project = PROJ AND status = Closed}
    columns:
      - {name: Summary, field: summary}
  - name: Blockers
    style: LinkOneTicket
    jql: key = PROJ-1
    link: is blocked by
    columns:
      - {name: Summary, field: summary}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertSampleDefinition(t *testing.T, def *domain.ReportDefinition) {
	t.Helper()
	assert.Equal(t, "Release report", def.Name)
	require.Len(t, def.Tables, 3)

	bugs := def.Tables[0]
	assert.Equal(t, domain.StyleClassic, bugs.Style)
	assert.Equal(t, "#BUGS#", bugs.Keyword)
	assert.Equal(t, "project = PROJ AND type = Bug", bugs.JQL)
	assert.Equal(t, []domain.ColumnDef{
		{Name: "Key", Type: "plain", Field: "key"},
		{Name: "Fix versions", Type: "multiple_values", Field: "fixVersions"},
		{Name: "Tested by", Type: "link", Field: "is tested by"},
		{Name: "Label", Type: "specific_summary", Field: "summary"},
	}, bugs.Columns)

	perState := def.Tables[1]
	assert.Equal(t, domain.StyleMultipleJQL, perState.Style)
	assert.Equal(t, []domain.FilterDef{
		{Name: "Open", JQL: "project = PROJ AND status = Open"},
		{Name: "Closed", JQL: "project = PROJ AND status = Closed"},
	}, perState.Filters)

	blockers := def.Tables[2]
	assert.Equal(t, domain.StyleLinkOneTicket, blockers.Style)
	assert.Equal(t, "key = PROJ-1", blockers.JQL)
	assert.Equal(t, "is blocked by", blockers.Link)
}

func TestLoader_LoadXML(t *testing.T) {
	def, err := NewLoader().Load(writeFile(t, "report.xml", sampleXML))

	require.NoError(t, err)
	assertSampleDefinition(t, def)
}

func TestLoader_LoadYAML(t *testing.T) {
	def, err := NewLoader().Load(writeFile(t, "report.yaml", sampleYAML))

	require.NoError(t, err)
	assertSampleDefinition(t, def)
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	_, err := NewLoader().Load(writeFile(t, "report.json", "{}"))

	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.xml"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_InvalidDefinition(t *testing.T) {
	content := `<Report name="R"><Table name="T" style="Classic"><Column>summary</Column></Table></Report>`

	_, err := NewLoader().Load(writeFile(t, "report.xml", content))

	require.ErrorIs(t, err, domain.ErrMissingJQL)
}

func TestParseXML_UnknownStyle(t *testing.T) {
	_, err := ParseXML([]byte(`<Report name="R"><Table name="T" style="Pie"/></Report>`))

	require.ErrorIs(t, err, domain.ErrUnknownStyle)
}

func TestParseXML_Malformed(t *testing.T) {
	_, err := ParseXML([]byte(`<Report name="R"><Table>`))

	require.Error(t, err)
}

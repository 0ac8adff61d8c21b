package cli

import (
	"bytes"
	"testing"

	"github.com/runoshun/jira-reports/internal/app"
	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/runoshun/jira-reports/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testDeps bundles the mocks behind a test container.
type testDeps struct {
	searcher *testutil.MockIssueSearcher
	loader   *testutil.MockDefinitionLoader
	excel    *testutil.MockExcelWriter
	word     *testutil.MockWordWriter
}

func sampleDefinition() *domain.ReportDefinition {
	return &domain.ReportDefinition{Name: "Release", Tables: []domain.TableDef{
		{
			Name: "Bugs", Keyword: "#BUGS#", Style: domain.StyleClassic, JQL: "type = Bug",
			Columns: []domain.ColumnDef{{Name: "Key", Field: "key"}, {Name: "Summary", Field: "summary"}},
		},
		{
			Name: "Per state", Style: domain.StyleMultipleJQL,
			Filters: []domain.FilterDef{{Name: "Open", JQL: "status = Open"}},
			Columns: []domain.ColumnDef{{Name: "Summary", Field: "summary"}},
		},
	}}
}

func newTestContainer(t *testing.T) (*app.Container, *testDeps) {
	t.Helper()

	deps := &testDeps{
		searcher: testutil.NewMockIssueSearcher(),
		loader:   &testutil.MockDefinitionLoader{Definition: sampleDefinition()},
		excel:    &testutil.MockExcelWriter{},
		word:     &testutil.MockWordWriter{},
	}
	deps.searcher.Results["type = Bug"] = []domain.Issue{
		{Key: "PROJ-1", Fields: map[string]any{"summary": "Login fails"}},
	}
	deps.searcher.Results["status = Open"] = []domain.Issue{
		{Key: "PROJ-2", Fields: map[string]any{"summary": "Slow search"}},
	}
	c := app.NewWithDeps(app.Config{WorkDir: t.TempDir()}, nil, deps.searcher, deps.loader, deps.excel, deps.word, nil)
	return c, deps
}

// runRoot executes the root command and returns stdout and stderr.
func runRoot(t *testing.T, c *app.Container, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCommand(c, "test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func requireNoErr(t *testing.T, err error, stderr string) {
	t.Helper()
	require.NoError(t, err, "stderr: %s", stderr)
}

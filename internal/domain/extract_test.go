package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, defs ...ColumnDef) ColumnSpec {
	t.Helper()
	spec, err := ResolveColumns(defs)
	require.NoError(t, err)
	return spec
}

func issueWithSummary(key, summary string) Issue {
	return Issue{
		Key: key,
		Fields: map[string]any{
			"summary": summary,
		},
	}
}

func link(inward, outward string, in, out *LinkedIssue) IssueLink {
	return IssueLink{
		Type:         LinkType{Name: inward + "/" + outward, Inward: inward, Outward: outward},
		InwardIssue:  in,
		OutwardIssue: out,
	}
}

func TestExtract_EmptyIssues(t *testing.T) {
	spec := mustSpec(t, ColumnDef{Field: "summary"})

	rows, err := Extract(nil, spec)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExtract_EmptySpecYieldsEmptyRecords(t *testing.T) {
	issues := []Issue{issueWithSummary("P-1", "a"), issueWithSummary("P-2", "b")}

	rows, err := Extract(issues, nil)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 0, r.Len())
	}
}

func TestExtract_OneRowPerIssue(t *testing.T) {
	issues := []Issue{
		issueWithSummary("P-1", "first"),
		issueWithSummary("P-2", "second"),
		issueWithSummary("P-3", "third"),
	}
	spec := mustSpec(t, ColumnDef{Field: "summary"}, ColumnDef{Type: "plain", Field: "key"})

	rows, err := Extract(issues, spec)

	require.NoError(t, err)
	require.Len(t, rows, len(issues))
	got := make([][]string, len(rows))
	for i, r := range rows {
		got[i] = r.Values()
	}
	want := [][]string{
		{"first", "P-1"},
		{"second", "P-2"},
		{"third", "P-3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_RawFieldFormatsValues(t *testing.T) {
	issue := Issue{
		Key: "P-1",
		Fields: map[string]any{
			"status":           map[string]any{"name": "Open", "id": "1"},
			"assignee":         map[string]any{"displayName": "Jane Doe", "name": "jdoe"},
			"customfield_1001": json.Number("3"),
			"labels":           []any{"a", "b"},
			"resolution":       nil,
		},
	}
	spec := mustSpec(t,
		ColumnDef{Field: "status"},
		ColumnDef{Field: "status.id"},
		ColumnDef{Field: "assignee"},
		ColumnDef{Field: "customfield_1001"},
		ColumnDef{Field: "labels"},
		ColumnDef{Field: "labels[1]"},
		ColumnDef{Field: "resolution"},
	)

	row, err := ExtractRow(issue, spec)

	require.NoError(t, err)
	assert.Equal(t, []string{"Open", "1", "Jane Doe", "3", "a, b", "b", ""}, row.Values())
}

func TestExtract_FieldNotFound(t *testing.T) {
	issues := []Issue{issueWithSummary("P-1", "x")}
	spec := mustSpec(t, ColumnDef{Field: "customfield_404"})

	rows, err := Extract(issues, spec)

	require.ErrorIs(t, err, ErrFieldNotFound)
	assert.Nil(t, rows)
	assert.Contains(t, err.Error(), "P-1")
}

func TestExtract_DuplicateFieldKeysAreSuffixed(t *testing.T) {
	issue := issueWithSummary("P-1", "Alpha_2_Beta")
	spec := mustSpec(t,
		ColumnDef{Name: "Summary", Field: "summary"},
		ColumnDef{Name: "Key", Field: "key"},
		ColumnDef{Name: "Summary again", Field: "summary"},
	)

	first, err := ExtractRow(issue, spec)
	require.NoError(t, err)
	second, err := ExtractRow(issue, spec)
	require.NoError(t, err)

	assert.Equal(t, []string{"summary", "key", "summary2"}, first.Keys())
	assert.Equal(t, first.Keys(), second.Keys())
	v, ok := first.Get("summary2")
	require.True(t, ok)
	assert.Equal(t, "Alpha_2_Beta", v)
}

func TestExtract_KeyOrderFollowsSpecOrder(t *testing.T) {
	issue := Issue{Key: "P-1", Fields: map[string]any{"a": "1", "b": "2", "c": "3"}}
	perms := [][]string{{"a", "b", "c"}, {"c", "a", "b"}, {"b", "c", "a"}}

	for _, perm := range perms {
		defs := make([]ColumnDef, len(perm))
		for i, f := range perm {
			defs[i] = ColumnDef{Field: f}
		}
		row, err := ExtractRow(issue, mustSpec(t, defs...))
		require.NoError(t, err)
		assert.Equal(t, perm, row.Keys())
	}
}

func TestExtract_MultiValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"two names", []any{map[string]any{"name": "A"}, map[string]any{"name": "B"}}, "A\nB"},
		{"empty list", []any{}, ""},
		{"null", nil, ""},
		{"plain strings", []any{"x", "y"}, "x\ny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := Issue{Key: "P-1", Fields: map[string]any{"fixVersions": tt.value}}
			spec := mustSpec(t, ColumnDef{Type: "multiple_values", Field: "fixVersions"})

			row, err := ExtractRow(issue, spec)

			require.NoError(t, err)
			got, _ := row.Get("fixVersions")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_MultiValueMissingField(t *testing.T) {
	spec := mustSpec(t, ColumnDef{Type: "multi_value", Field: "versions"})

	_, err := ExtractRow(issueWithSummary("P-1", "x"), spec)

	require.ErrorIs(t, err, ErrFieldNotFound)
}

func TestExtract_VersionedSummarySegment(t *testing.T) {
	spec := mustSpec(t, ColumnDef{Type: "specific_summary", Field: "summary"})

	row, err := ExtractRow(issueWithSummary("P-1", "PROJ_3_FixVersion"), spec)
	require.NoError(t, err)
	got, _ := row.Get("summary")
	assert.Equal(t, "FixVersion", got)

	_, err = ExtractRow(issueWithSummary("P-2", "PROJ_3"), spec)
	require.ErrorIs(t, err, ErrMalformedLabel)
}

func TestExtract_LinkMode(t *testing.T) {
	issue := Issue{
		Key:    "P-1",
		Fields: map[string]any{"summary": "x"},
		Links: []IssueLink{
			link("is tested by", "tests", &LinkedIssue{Key: "T-1", Summary: "TestA_1_first"}, nil),
			link("is tested by", "tests", &LinkedIssue{Key: "T-2", Summary: "TestA_2_second"}, nil),
			link("is tested by", "tests", &LinkedIssue{Key: "T-3", Summary: "TestB_1_other"}, nil),
			link("is blocked by", "blocks", &LinkedIssue{Key: "B-1", Summary: "Block_1_x"}, nil),
		},
	}
	spec := mustSpec(t, ColumnDef{Type: "link", Field: "is tested by"})

	row, err := ExtractRow(issue, spec)

	require.NoError(t, err)
	got, _ := row.Get("is tested by")
	assert.Equal(t, "TestA Iss. 2\nTestB Iss. 1", got)
}

func TestExtract_LinkOutwardDirection(t *testing.T) {
	issue := Issue{
		Key: "P-1",
		Links: []IssueLink{
			link("is tested by", "tests", nil, &LinkedIssue{Key: "R-1", Summary: "Req_4_text"}),
		},
	}
	spec := mustSpec(t, ColumnDef{Type: "link", Field: "tests"})

	row, err := ExtractRow(issue, spec)

	require.NoError(t, err)
	got, _ := row.Get("tests")
	assert.Equal(t, "Req Iss. 4", got)
}

func TestExtract_LinkWithAbsentTargetIsSkipped(t *testing.T) {
	issue := Issue{
		Key: "P-1",
		Links: []IssueLink{
			link("is tested by", "tests", nil, nil),
			link("is tested by", "tests", &LinkedIssue{Key: "T-1", Summary: "Test_1_x"}, nil),
		},
	}
	spec := mustSpec(t, ColumnDef{Type: "link", Field: "is tested by"})

	row, err := ExtractRow(issue, spec)

	require.NoError(t, err)
	got, _ := row.Get("is tested by")
	assert.Equal(t, "Test Iss. 1", got)
}

func TestExtract_LinkSymmetricVerb(t *testing.T) {
	// "relates to" is both the inward and the outward verb; only one end is set.
	issue := Issue{
		Key: "P-1",
		Links: []IssueLink{
			link("relates to", "relates to", nil, &LinkedIssue{Key: "R-1", Summary: "Rel_1_x"}),
		},
	}
	spec := mustSpec(t, ColumnDef{Type: "link", Field: "relates to"})

	row, err := ExtractRow(issue, spec)

	require.NoError(t, err)
	got, _ := row.Get("relates to")
	assert.Equal(t, "Rel Iss. 1", got)
}

func TestExtract_LinkNoMatchesIsEmpty(t *testing.T) {
	spec := mustSpec(t, ColumnDef{Type: "link", Field: "duplicates"})

	row, err := ExtractRow(Issue{Key: "P-1"}, spec)

	require.NoError(t, err)
	got, ok := row.Get("duplicates")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestExtract_LinkMalformedTargetSummary(t *testing.T) {
	issue := Issue{
		Key:   "P-1",
		Links: []IssueLink{link("is tested by", "tests", &LinkedIssue{Key: "T-1", Summary: "nounderscore"}, nil)},
	}
	spec := mustSpec(t, ColumnDef{Type: "link", Field: "is tested by"})

	_, err := ExtractRow(issue, spec)

	require.ErrorIs(t, err, ErrMalformedLabel)
}

func TestExtract_TopLevelKeyFallback(t *testing.T) {
	issue := Issue{Key: "P-9", ID: "10009", Fields: map[string]any{}}
	spec := mustSpec(t, ColumnDef{Field: "key"}, ColumnDef{Field: "id"})

	row, err := ExtractRow(issue, spec)

	require.NoError(t, err)
	assert.Equal(t, []string{"P-9", "10009"}, row.Values())
}

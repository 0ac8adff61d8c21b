package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable() TableDef {
	return TableDef{
		Name:    "Bugs",
		Style:   StyleClassic,
		JQL:     "project = P",
		Columns: []ColumnDef{{Name: "Summary", Field: "summary"}},
	}
}

func TestParseTableStyle(t *testing.T) {
	for in, want := range map[string]TableStyle{
		"Classic":       StyleClassic,
		"classic":       StyleClassic,
		"MultipleJQL":   StyleMultipleJQL,
		"LinkOneTicket": StyleLinkOneTicket,
	} {
		got, err := ParseTableStyle(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseTableStyle("Fancy")
	require.ErrorIs(t, err, ErrUnknownStyle)
}

func TestReportDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *ReportDefinition)
		wantErr error
	}{
		{"valid", func(*ReportDefinition) {}, nil},
		{"no name", func(d *ReportDefinition) { d.Name = " " }, ErrEmptyReportName},
		{"no tables", func(d *ReportDefinition) { d.Tables = nil }, ErrEmptyDefinition},
		{"classic without jql", func(d *ReportDefinition) { d.Tables[0].JQL = "" }, ErrMissingJQL},
		{"no columns", func(d *ReportDefinition) { d.Tables[0].Columns = nil }, ErrNoColumns},
		{"unknown style", func(d *ReportDefinition) { d.Tables[0].Style = "Other" }, ErrUnknownStyle},
		{"link table without link", func(d *ReportDefinition) { d.Tables[0].Style = StyleLinkOneTicket }, ErrMissingLinkType},
		{"multiple without filters", func(d *ReportDefinition) { d.Tables[0].Style = StyleMultipleJQL }, ErrMissingJQL},
		{"multiple with empty filter", func(d *ReportDefinition) {
			d.Tables[0].Style = StyleMultipleJQL
			d.Tables[0].Filters = []FilterDef{{Name: "Open", JQL: "status = Open"}, {Name: "Empty"}}
		}, ErrMissingJQL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &ReportDefinition{Name: "Report", Tables: []TableDef{validTable()}}
			tt.mutate(def)
			err := def.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLinkedIssuesJQL(t *testing.T) {
	tests := []struct {
		name string
		verb string
	}{
		{"bare verb", "is blocked by"},
		{"quoted verb", `"is blocked by"`},
		{"quoted verb with spaces", ` "is blocked by" `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, `issue in linkedIssues(P-1, "is blocked by")`, LinkedIssuesJQL("P-1", tt.verb))
		})
	}
}

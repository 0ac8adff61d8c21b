package domain

import (
	"fmt"
	"strings"
)

// TableStyle selects how a table's issues are queried and laid out.
type TableStyle string

// Table styles.
const (
	StyleClassic       TableStyle = "Classic"
	StyleMultipleJQL   TableStyle = "MultipleJQL"
	StyleLinkOneTicket TableStyle = "LinkOneTicket"
)

// ParseTableStyle parses a style attribute, case-insensitively.
func ParseTableStyle(s string) (TableStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		return StyleClassic, nil
	case "multiplejql":
		return StyleMultipleJQL, nil
	case "linkoneticket":
		return StyleLinkOneTicket, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
}

// ReportDefinition is a parsed report definition file.
type ReportDefinition struct {
	Name   string
	Tables []TableDef
}

// TableDef describes one output table.
// Fields are ordered to minimize memory padding.
type TableDef struct {
	Name    string
	Keyword string // Marker text locating the table in a Word template
	JQL     string // Query for Classic and LinkOneTicket tables
	Link    string // Link verb for LinkOneTicket tables
	Style   TableStyle
	Filters []FilterDef // Named queries for MultipleJQL tables
	Columns []ColumnDef
}

// FilterDef is one named query of a MultipleJQL table.
type FilterDef struct {
	Name string
	JQL  string
}

// ColumnDef is a column as written in the definition file.
type ColumnDef struct {
	Name  string // Header text
	Type  string // Extraction mode alias
	Field string // Field path or link verb
}

// Validate checks the definition for structural errors.
func (d *ReportDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyReportName
	}
	if len(d.Tables) == 0 {
		return ErrEmptyDefinition
	}
	for i := range d.Tables {
		if err := d.Tables[i].Validate(); err != nil {
			return fmt.Errorf("table %d (%s): %w", i+1, d.Tables[i].Name, err)
		}
	}
	return nil
}

// Validate checks one table definition.
func (t *TableDef) Validate() error {
	switch t.Style {
	case StyleClassic:
		if strings.TrimSpace(t.JQL) == "" {
			return ErrMissingJQL
		}
	case StyleLinkOneTicket:
		if strings.TrimSpace(t.JQL) == "" {
			return ErrMissingJQL
		}
		if strings.TrimSpace(t.Link) == "" {
			return ErrMissingLinkType
		}
	case StyleMultipleJQL:
		if len(t.Filters) == 0 {
			return ErrMissingJQL
		}
		for i, f := range t.Filters {
			if strings.TrimSpace(f.JQL) == "" {
				return fmt.Errorf("filter %d (%s): %w", i+1, f.Name, ErrMissingJQL)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStyle, t.Style)
	}
	if len(t.Columns) == 0 {
		return ErrNoColumns
	}
	return nil
}

// LinkedIssuesJQL returns the query listing issues linked to key through verb.
// A verb already wrapped in double quotes is used as written.
func LinkedIssuesJQL(key, verb string) string {
	verb = strings.TrimSpace(verb)
	if len(verb) >= 2 && strings.HasPrefix(verb, `"`) && strings.HasSuffix(verb, `"`) {
		verb = verb[1 : len(verb)-1]
	}
	return fmt.Sprintf("issue in linkedIssues(%s, %q)", key, verb)
}

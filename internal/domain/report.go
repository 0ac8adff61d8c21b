package domain

// Report is the extracted content of a report definition, ready for the writers.
type Report struct {
	Name   string
	Tables []TableData
}

// TableData holds the rows of one table.
// Classic and LinkOneTicket tables have a single unnamed group; MultipleJQL
// tables have one named group per filter.
type TableData struct {
	Name    string
	Keyword string
	Style   TableStyle
	Headers []string
	Groups  []RowGroup
}

// RowGroup is a run of rows sharing a heading.
type RowGroup struct {
	Name string
	Rows []RowRecord
}

// Grouped reports whether group headings should be rendered.
func (t TableData) Grouped() bool {
	return t.Style == StyleMultipleJQL
}

// RowCount returns the number of data rows across all groups.
func (t TableData) RowCount() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g.Rows)
	}
	return n
}

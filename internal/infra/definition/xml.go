package definition

import (
	"encoding/xml"
	"strings"

	"github.com/runoshun/jira-reports/internal/domain"
)

type xmlReport struct {
	Name   string     `xml:"name,attr"`
	Tables []xmlTable `xml:"Table"`
}

type xmlTable struct {
	Name    string      `xml:"name,attr"`
	Style   string      `xml:"style,attr"`
	Keyword string      `xml:"keyword,attr"`
	JQL     *xmlJQL     `xml:"JQL"`
	Filters []xmlFilter `xml:"Filters"`
	Columns []xmlColumn `xml:"Column"`
}

type xmlJQL struct {
	Name  string `xml:"name,attr"`
	Link  string `xml:"link,attr"`
	Query string `xml:",chardata"`
}

type xmlFilter struct {
	Queries []xmlJQL `xml:"JQL"`
}

type xmlColumn struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Field string `xml:",chardata"`
}

// ParseXML parses an XML report definition.
// The root element is <Report name="...">; any root tag name is accepted.
func ParseXML(data []byte) (*domain.ReportDefinition, error) {
	var raw xmlReport
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	def := &domain.ReportDefinition{
		Name:   strings.TrimSpace(raw.Name),
		Tables: make([]domain.TableDef, 0, len(raw.Tables)),
	}
	for _, t := range raw.Tables {
		style, err := domain.ParseTableStyle(t.Style)
		if err != nil {
			return nil, err
		}
		table := domain.TableDef{
			Name:    strings.TrimSpace(t.Name),
			Keyword: t.Keyword,
			Style:   style,
		}
		if t.JQL != nil {
			table.JQL = strings.TrimSpace(t.JQL.Query)
			table.Link = strings.TrimSpace(t.JQL.Link)
		}
		for _, f := range t.Filters {
			for _, q := range f.Queries {
				table.Filters = append(table.Filters, domain.FilterDef{
					Name: strings.TrimSpace(q.Name),
					JQL:  strings.TrimSpace(q.Query),
				})
			}
		}
		for _, c := range t.Columns {
			table.Columns = append(table.Columns, domain.ColumnDef{
				Name:  strings.TrimSpace(c.Name),
				Type:  strings.TrimSpace(c.Type),
				Field: strings.TrimSpace(c.Field),
			})
		}
		def.Tables = append(def.Tables, table)
	}
	return def, nil
}

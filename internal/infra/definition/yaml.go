package definition

import (
	"strings"

	"github.com/runoshun/jira-reports/internal/domain"
	"gopkg.in/yaml.v3"
)

type yamlReport struct {
	Name   string      `yaml:"name"`
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name    string       `yaml:"name"`
	Style   string       `yaml:"style"`
	Keyword string       `yaml:"keyword"`
	JQL     string       `yaml:"jql"`
	Link    string       `yaml:"link"`
	Filters []yamlFilter `yaml:"filters"`
	Columns []yamlColumn `yaml:"columns"`
}

type yamlFilter struct {
	Name string `yaml:"name"`
	JQL  string `yaml:"jql"`
}

type yamlColumn struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Field string `yaml:"field"`
}

// ParseYAML parses a YAML report definition.
func ParseYAML(data []byte) (*domain.ReportDefinition, error) {
	var raw yamlReport
	if err := yaml.Unmarshal(data, &raw); err != nil {
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
			JQL:     strings.TrimSpace(t.JQL),
			Link:    strings.TrimSpace(t.Link),
		}
		for _, f := range t.Filters {
			table.Filters = append(table.Filters, domain.FilterDef{
				Name: strings.TrimSpace(f.Name),
				JQL:  strings.TrimSpace(f.JQL),
			})
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

package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jira-reports/internal/domain"
)

// ValidateDefinitionInput contains the definition to check.
type ValidateDefinitionInput struct {
	DefinitionPath string
}

// ColumnSummary describes one resolved column.
type ColumnSummary struct {
	Header string
	Field  string
	Mode   domain.ExtractionMode
}

// TableSummary describes one validated table.
type TableSummary struct {
	Name    string
	Keyword string
	Style   domain.TableStyle
	Columns []ColumnSummary
	Queries int // Number of JQL queries the table runs
}

// ValidateDefinitionOutput contains the summary of a valid definition.
type ValidateDefinitionOutput struct {
	Name   string
	Tables []TableSummary
}

// ValidateDefinition parses a definition and resolves every column without network access.
type ValidateDefinition struct {
	loader domain.DefinitionLoader
}

// NewValidateDefinition creates a new ValidateDefinition use case.
func NewValidateDefinition(loader domain.DefinitionLoader) *ValidateDefinition {
	return &ValidateDefinition{loader: loader}
}

// Execute validates the definition.
func (uc *ValidateDefinition) Execute(_ context.Context, in ValidateDefinitionInput) (*ValidateDefinitionOutput, error) {
	def, err := uc.loader.Load(in.DefinitionPath)
	if err != nil {
		return nil, err
	}

	out := &ValidateDefinitionOutput{Name: def.Name, Tables: make([]TableSummary, 0, len(def.Tables))}
	for _, t := range def.Tables {
		spec, err := domain.ResolveColumns(t.Columns)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}
		summary := TableSummary{
			Name:    t.Name,
			Keyword: t.Keyword,
			Style:   t.Style,
			Columns: make([]ColumnSummary, len(spec)),
		}
		for i, e := range spec {
			summary.Columns[i] = ColumnSummary{Header: e.Header, Field: e.Field, Mode: e.Mode}
		}
		switch t.Style {
		case domain.StyleMultipleJQL:
			summary.Queries = len(t.Filters)
		case domain.StyleLinkOneTicket:
			summary.Queries = 2
		default:
			summary.Queries = 1
		}
		out.Tables = append(out.Tables, summary)
	}
	return out, nil
}

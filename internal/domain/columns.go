package domain

import (
	"fmt"
	"strings"
)

// ExtractionMode selects how a column value is derived from an issue.
type ExtractionMode string

// Extraction modes.
const (
	ModeRawField                ExtractionMode = "raw_field"
	ModePlain                   ExtractionMode = "plain"
	ModeMultiValue              ExtractionMode = "multi_value"
	ModeLink                    ExtractionMode = "link"
	ModeVersionedSummarySegment ExtractionMode = "versioned_summary_segment"
)

// ParseExtractionMode maps a definition "type" attribute to a mode.
// Unknown or empty values fall back to ModeRawField.
func ParseExtractionMode(s string) ExtractionMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return ModePlain
	case "multi_value", "multiple_values", "multiplevalues":
		return ModeMultiValue
	case "link":
		return ModeLink
	case "versioned_summary_segment", "specific_summary", "summary":
		return ModeVersionedSummarySegment
	default:
		return ModeRawField
	}
}

// UsesFieldPath reports whether the mode reads Field as a field path.
func (m ExtractionMode) UsesFieldPath() bool {
	return m == ModeRawField || m == ModePlain || m == ModeMultiValue
}

// ColumnEntry describes how one output column is derived.
type ColumnEntry struct {
	accessor Accessor
	Mode     ExtractionMode
	Field    string // Field path, or link verb for ModeLink
	Header   string // Display name used by document writers
	Position int    // Zero-based index in the table definition
}

// ColumnSpec is the ordered list of column entries for one table.
type ColumnSpec []ColumnEntry

// Headers returns the display names in column order.
func (s ColumnSpec) Headers() []string {
	headers := make([]string, len(s))
	for i, e := range s {
		headers[i] = e.Header
	}
	return headers
}

// ResolveColumns builds the column specification from table column definitions.
// Field paths are validated here so that extraction never sees a malformed path.
func ResolveColumns(defs []ColumnDef) (ColumnSpec, error) {
	spec := make(ColumnSpec, 0, len(defs))
	for i, def := range defs {
		entry := ColumnEntry{
			Mode:     ParseExtractionMode(def.Type),
			Field:    strings.TrimSpace(def.Field),
			Header:   def.Name,
			Position: i,
		}
		if entry.Header == "" {
			entry.Header = entry.Field
		}
		if entry.Field == "" {
			return nil, fmt.Errorf("column %d: %w: empty field", i+1, ErrInvalidFieldPath)
		}
		if entry.Mode.UsesFieldPath() {
			accessor, err := CompileAccessor(entry.Field)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", i+1, err)
			}
			entry.accessor = accessor
		}
		spec = append(spec, entry)
	}
	return spec, nil
}

// Package definition reads report definition files (XML or YAML).
package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/jira-reports/internal/domain"
)

// Ensure Loader implements domain.DefinitionLoader.
var _ domain.DefinitionLoader = (*Loader)(nil)

// Loader picks a parser from the file extension.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, parses and validates the definition at path.
func (l *Loader) Load(path string) (*domain.ReportDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	var def *domain.ReportDefinition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		def, err = ParseXML(data)
	case ".yaml", ".yml":
		def, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition %s: %w", filepath.Base(path), err)
	}
	return def, nil
}

package usecase

import (
	"context"
	"strings"

	"github.com/runoshun/jira-reports/internal/domain"
)

// InspectIssueInput contains the issue to inspect.
type InspectIssueInput struct {
	Key    string
	Filter string // Only paths containing this text (case-insensitive, optional)
}

// InspectIssueOutput lists the field paths of an issue.
type InspectIssueOutput struct {
	Key    string
	Fields []domain.FieldValue // Sorted by path
}

// InspectIssue fetches one issue and lists the field paths usable in column definitions.
type InspectIssue struct {
	searcher domain.IssueSearcher
}

// NewInspectIssue creates a new InspectIssue use case.
func NewInspectIssue(searcher domain.IssueSearcher) *InspectIssue {
	return &InspectIssue{searcher: searcher}
}

// Execute fetches the issue and flattens its fields.
func (uc *InspectIssue) Execute(ctx context.Context, in InspectIssueInput) (*InspectIssueOutput, error) {
	key := strings.ToUpper(strings.TrimSpace(in.Key))
	issue, err := uc.searcher.GetIssue(ctx, key)
	if err != nil {
		return nil, err
	}

	fields := domain.FlattenIssue(*issue)
	if in.Filter != "" {
		filter := strings.ToLower(in.Filter)
		kept := fields[:0]
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f.Path), filter) {
				kept = append(kept, f)
			}
		}
		fields = kept
	}
	return &InspectIssueOutput{Key: issue.Key, Fields: fields}, nil
}

package domain

import (
	"fmt"
	"strings"
)

const (
	labelDelimiter    = "_"
	linkLabelInfix    = " Iss. "
	summarySegmentIdx = 2
)

// Extract converts issues into row records following spec.
// The result has one record per issue, in issue order. The first failing issue
// aborts extraction; use ExtractRow to skip failing issues instead.
func Extract(issues []Issue, spec ColumnSpec) ([]RowRecord, error) {
	rows := make([]RowRecord, 0, len(issues))
	for _, issue := range issues {
		row, err := ExtractRow(issue, spec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExtractRow builds the row record of a single issue.
// Errors are wrapped with the issue key and column position and keep the
// underlying ErrFieldNotFound / ErrMalformedLabel for errors.Is.
func ExtractRow(issue Issue, spec ColumnSpec) (RowRecord, error) {
	row := RowRecord{values: make(map[string]string, len(spec))}
	for _, entry := range spec {
		value, err := extractValue(issue, entry)
		if err != nil {
			return RowRecord{}, fmt.Errorf("issue %s: column %d (%s): %w", issue.Key, entry.Position+1, entry.Field, err)
		}
		row.set(row.uniqueKey(entry.Field, entry.Position), value)
	}
	return row, nil
}

func extractValue(issue Issue, entry ColumnEntry) (string, error) {
	switch entry.Mode {
	case ModeMultiValue:
		return extractMultiValue(issue, entry)
	case ModeLink:
		return extractLinks(issue, entry.Field)
	case ModeVersionedSummarySegment:
		return extractSummarySegment(issue)
	default:
		v, err := entry.lookup(issue)
		if err != nil {
			return "", err
		}
		return FormatValue(v), nil
	}
}

func (e ColumnEntry) lookup(issue Issue) (any, error) {
	if e.accessor == nil {
		// Entries built by hand rather than through ResolveColumns.
		accessor, err := CompileAccessor(e.Field)
		if err != nil {
			return nil, err
		}
		return accessor(issue)
	}
	return e.accessor(issue)
}

func extractMultiValue(issue Issue, entry ColumnEntry) (string, error) {
	v, err := entry.lookup(issue)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	list, ok := v.([]any)
	if !ok {
		return FormatValue(v), nil
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			if name, ok := obj["name"]; ok {
				names = append(names, FormatValue(name))
				continue
			}
		}
		names = append(names, FormatValue(item))
	}
	return strings.Join(names, "\n"), nil
}

func extractSummarySegment(issue Issue) (string, error) {
	summary, err := issue.Summary()
	if err != nil {
		return "", err
	}
	segments := strings.Split(summary, labelDelimiter)
	if len(segments) <= summarySegmentIdx {
		return "", fmt.Errorf("%w: %q has %d segments, need %d", ErrMalformedLabel, summary, len(segments), summarySegmentIdx+1)
	}
	return segments[summarySegmentIdx], nil
}

func extractLinks(issue Issue, verb string) (string, error) {
	var labels []string
	for _, link := range issue.Links {
		target := linkTarget(link, verb)
		if target == nil {
			continue
		}
		label, err := shortLinkLabel(target.Summary)
		if err != nil {
			return "", fmt.Errorf("link to %s: %w", target.Key, err)
		}
		labels = append(labels, label)
	}
	reduced, err := ReduceToHighest(labels, linkLabelInfix, 0)
	if err != nil {
		return "", err
	}
	return strings.Join(reduced, "\n"), nil
}

// linkTarget returns the linked issue reached through verb, or nil.
func linkTarget(link IssueLink, verb string) *LinkedIssue {
	if link.Type.Inward == verb && link.InwardIssue != nil {
		return link.InwardIssue
	}
	if link.Type.Outward == verb && link.OutwardIssue != nil {
		return link.OutwardIssue
	}
	return nil
}

// shortLinkLabel formats "NAME_3_rest" as "NAME Iss. 3".
func shortLinkLabel(summary string) (string, error) {
	segments := strings.Split(summary, labelDelimiter)
	if len(segments) < 2 {
		return "", fmt.Errorf("%w: %q has no version segment", ErrMalformedLabel, summary)
	}
	return segments[0] + linkLabelInfix + segments[1], nil
}

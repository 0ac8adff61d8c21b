package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Accessor reads one field path from an issue.
// It returns ErrFieldNotFound (wrapped) when the path does not exist on the issue.
type Accessor func(issue Issue) (any, error)

// fieldSegmentPattern matches one path segment: a name with an optional [n] index.
var fieldSegmentPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)(?:\[(\d+)\])?$`)

// topLevelFields are issue attributes reachable when Fields does not define them.
var topLevelFields = map[string]func(Issue) string{
	"key":  func(i Issue) string { return i.Key },
	"id":   func(i Issue) string { return i.ID },
	"self": func(i Issue) string { return i.Self },
}

type pathStep struct {
	name     string
	index    int
	hasIndex bool
}

// CompileAccessor validates a dotted field path and returns its accessor.
//
// Grammar: segment ("." segment)*, where a segment is [A-Za-z0-9_-]+ optionally
// followed by [n]. Examples: "summary", "status.name", "customfield_10010[0].value".
func CompileAccessor(path string) (Accessor, error) {
	steps, err := parseFieldPath(path)
	if err != nil {
		return nil, err
	}
	return func(issue Issue) (any, error) {
		return lookup(issue, path, steps)
	}, nil
}

func mustCompileAccessor(path string) Accessor {
	a, err := CompileAccessor(path)
	if err != nil {
		panic(err)
	}
	return a
}

func parseFieldPath(path string) ([]pathStep, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidFieldPath)
	}
	parts := strings.Split(trimmed, ".")
	steps := make([]pathStep, 0, len(parts))
	for _, part := range parts {
		m := fieldSegmentPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("%w: %q (bad segment %q)", ErrInvalidFieldPath, path, part)
		}
		step := pathStep{name: m[1]}
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFieldPath, path, err)
			}
			step.index = n
			step.hasIndex = true
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func lookup(issue Issue, path string, steps []pathStep) (any, error) {
	notFound := func() error {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, path)
	}

	first := steps[0]
	cur, ok := issue.Fields[first.name]
	if !ok {
		get, top := topLevelFields[first.name]
		if !top || len(steps) > 1 || first.hasIndex {
			return nil, notFound()
		}
		return get(issue), nil
	}

	for i, step := range steps {
		if i > 0 {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, notFound()
			}
			cur, ok = m[step.name]
			if !ok {
				return nil, notFound()
			}
		}
		if step.hasIndex {
			list, ok := cur.([]any)
			if !ok || step.index >= len(list) {
				return nil, notFound()
			}
			cur = list[step.index]
		}
	}
	return cur, nil
}

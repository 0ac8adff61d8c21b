package domain

import (
	"sort"
	"strconv"
)

// FieldValue is one leaf of an issue's field tree, addressed by a field path.
type FieldValue struct {
	Path  string
	Value string
}

// FlattenIssue lists every field path of issue with its cell text, sorted by path.
// Lists appear both as a whole (joined) and element by element.
func FlattenIssue(issue Issue) []FieldValue {
	var out []FieldValue
	for name, get := range topLevelFields {
		if _, ok := issue.Fields[name]; !ok {
			out = append(out, FieldValue{Path: name, Value: get(issue)})
		}
	}
	for name, v := range issue.Fields {
		out = flatten(out, name, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func flatten(out []FieldValue, path string, v any) []FieldValue {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			return append(out, FieldValue{Path: path})
		}
		for k, child := range val {
			out = flatten(out, path+"."+k, child)
		}
		return out
	case []any:
		out = append(out, FieldValue{Path: path, Value: FormatValue(val)})
		for i, child := range val {
			out = flatten(out, path+"["+strconv.Itoa(i)+"]", child)
		}
		return out
	default:
		return append(out, FieldValue{Path: path, Value: FormatValue(val)})
	}
}

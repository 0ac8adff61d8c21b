package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// readableKeys are tried in order when an object has to be shown as text.
var readableKeys = []string{"displayName", "name", "value", "key", "id"}

// FormatValue returns the text shown in a report cell for a decoded field value.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case map[string]any:
		for _, k := range readableKeys {
			if r, ok := val[k]; ok && r != nil {
				return FormatValue(r)
			}
		}
		return ""
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

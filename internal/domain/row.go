package domain

import "strconv"

// RowRecord maps column keys to cell text, keeping the order in which keys were added.
// A RowRecord returned by the extraction engine is never modified afterwards.
type RowRecord struct {
	values map[string]string
	keys   []string
}

// NewRowRecord builds a record from alternating key/value arguments.
// It is meant for writers and tests that need records without running extraction.
func NewRowRecord(kv ...string) RowRecord {
	r := RowRecord{values: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		r.set(kv[i], kv[i+1])
	}
	return r
}

// Keys returns the column keys in column order.
func (r RowRecord) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Values returns the cell texts in column order.
func (r RowRecord) Values() []string {
	vals := make([]string, len(r.keys))
	for i, k := range r.keys {
		vals[i] = r.values[k]
	}
	return vals
}

// Get returns the value stored under key.
func (r RowRecord) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of columns.
func (r RowRecord) Len() int {
	return len(r.keys)
}

func (r RowRecord) has(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r *RowRecord) set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// uniqueKey returns key, suffixed with the column position until it no longer collides.
func (r RowRecord) uniqueKey(key string, position int) string {
	suffix := strconv.Itoa(position)
	for r.has(key) {
		key += suffix
	}
	return key
}

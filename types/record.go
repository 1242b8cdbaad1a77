// Package types holds the record shapes shared across poolwatch.
package types

// Record is one worker or worker-pool entry as returned by the
// worker-manager API. The upstream schema is not ours to enforce, so
// records stay generic maps and callers pick out the fields they need.
type Record map[string]any

// String returns the named field as a string, or "" when absent or not
// a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the named field as an int. JSON numbers decode as
// float64, so both forms are accepted. def is returned when the field
// is absent or not numeric.
func (r Record) Int(key string, def int) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// Map returns the named field as a nested record, or nil.
func (r Record) Map(key string) Record {
	m, _ := r[key].(map[string]any)
	return Record(m)
}

// List returns the named field as a slice, or nil.
func (r Record) List(key string) []any {
	l, _ := r[key].([]any)
	return l
}

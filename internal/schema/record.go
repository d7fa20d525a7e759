package schema

// Record is one typed row keyed by a schema.
type Record struct {
	schema *Schema
	values []any
}

// NewRecord wraps values (already typed, in schema order).
func NewRecord(s *Schema, values []any) Record {
	return Record{schema: s, values: values}
}

// Schema returns the schema the record was parsed with.
func (r Record) Schema() *Schema {
	return r.schema
}

// Values returns the values in schema order.
func (r Record) Values() []any {
	return r.values
}

// Get returns the value of column name, or nil if absent.
func (r Record) Get(name string) any {
	if r.schema == nil {
		return nil
	}
	i := r.schema.Index(name)
	if i < 0 {
		return nil
	}
	return r.values[i]
}

// String returns a string column, or "" if absent or not a string.
func (r Record) String(name string) string {
	s, _ := r.Get(name).(string)
	return s
}

// Float returns a numeric column as float64. Int columns are converted.
func (r Record) Float(name string) float64 {
	switch v := r.Get(name).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// Formatted returns every value passed through FormatData.
func (r Record) Formatted() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = FormatData(v)
	}
	return out
}

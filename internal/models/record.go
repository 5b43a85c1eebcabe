package models

// Record is one normalized row: a value per header column, in header order.
//
// All records of a Dataset share the same header slice, so the key set of
// every record is the header row itself (duplicate names included).
type Record struct {
	fields []string
	values []string
}

// NewRecord pairs values positionally with fields. Missing trailing values
// become empty strings and values beyond the header width are dropped, so
// the result always has exactly len(fields) entries.
func NewRecord(fields []string, values []string) Record {
	zipped := make([]string, len(fields))
	copy(zipped, values)
	return Record{fields: fields, values: zipped}
}

// Fields returns the header names in column order.
func (r Record) Fields() []string {
	return r.fields
}

// Values returns the cell values in column order.
func (r Record) Values() []string {
	return r.values
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.values)
}

// At returns the value at column index i, or "" when i is out of range.
func (r Record) At(i int) string {
	if i < 0 || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Get returns the value of the first column named name.
func (r Record) Get(name string) (string, bool) {
	for i, f := range r.fields {
		if f == name {
			return r.values[i], true
		}
	}
	return "", false
}

// Map returns a map view of the record. When header names repeat, the first
// column wins.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.fields))
	for i, f := range r.fields {
		if _, seen := m[f]; seen {
			continue
		}
		m[f] = r.values[i]
	}
	return m
}

// IsBlank reports whether every value is empty once whitespace is trimmed.
func (r Record) IsBlank() bool {
	return IsBlankRow(r.values)
}

package models

import "strings"

// ColumnRole designates the column holding the customer identity of a
// dataset. It is resolved once per dataset and reused by every consumer.
type ColumnRole struct {
	Field      string
	Index      int
	Rule       string
	Confidence float64
}

// Unresolved is the role returned when no header matched any rule.
var Unresolved = ColumnRole{Index: -1}

// Resolved reports whether a customer column was found.
func (c ColumnRole) Resolved() bool {
	return c.Index >= 0
}

// Value returns the trimmed customer cell of a record, or "" when the role
// is unresolved.
func (c ColumnRole) Value(r Record) string {
	if !c.Resolved() {
		return ""
	}
	return strings.TrimSpace(r.At(c.Index))
}

func (c ColumnRole) String() string {
	if !c.Resolved() {
		return "<unresolved>"
	}
	return c.Field
}

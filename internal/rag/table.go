package rag

import "strings"

// Row is one input record, keyed by column name. Absent columns and null
// cells are both represented as missing/empty entries.
type Row map[string]string

// Value returns the trimmed cell value; empty string means null.
func (r Row) Value(column string) string {
	return strings.TrimSpace(r[column])
}

// Table is the raw tabular input handed over by the source collaborator.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the input schema contains the column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

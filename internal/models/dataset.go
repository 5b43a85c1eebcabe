// Package models holds the in-memory shapes shared by the ingestion pipeline:
// datasets of normalized records and the column role resolved for them.
package models

import (
	"strings"
	"time"
)

// Format identifies the kind of file a dataset was read from.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// Dataset is the normalized content of one uploaded file.
//
// A Dataset is never patched: a new upload produces a new Dataset with a new
// ID and the previous one is dropped.
type Dataset struct {
	ID        string
	Source    string
	Format    Format
	Fields    []string
	Records   []Record
	CreatedAt time.Time
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// IsEmpty reports whether the dataset holds no records.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// IsBlankRow reports whether all cells are empty after trimming whitespace.
func IsBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

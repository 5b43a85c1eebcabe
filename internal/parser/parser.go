// Package parser reads uploaded tabular files (CSV, XLSX, XLS) into raw
// string rows. It knows nothing about headers or customers; that is the
// schema normalizer's job.
package parser

import (
	"io"
	"path/filepath"
	"strings"

	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/parsererror"
)

// Parser turns an uploaded file into rows of cells.
//
// Row 0 is whatever the file holds first (normally the header). Fully blank
// rows are removed before returning; missing trailing cells are simply
// absent from a row. Implementations return *parsererror.MalformedInputError
// or *parsererror.EmptyDatasetError and never a partial result.
type Parser interface {
	Parse(r io.Reader) ([][]string, error)
}

// Options tune the concrete parsers.
type Options struct {
	// Source is the original file name, used in errors and logs.
	Source string
	// Delimiter is the CSV field separator. Zero means ','.
	Delimiter rune
	// MaxRows caps the number of data rows. Zero means unlimited.
	MaxRows int
	// XLSCharset is the code page passed to the legacy XLS decoder.
	XLSCharset string
}

const defaultXLSCharset = "utf-8"

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.XLSCharset == "" {
		o.XLSCharset = defaultXLSCharset
	}
	return o
}

// FormatFromName maps a file name to its format by extension, ignoring case.
// Only .csv, .xlsx and .xls are accepted.
func FormatFromName(name string) (models.Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return models.FormatCSV, nil
	case ".xlsx":
		return models.FormatXLSX, nil
	case ".xls":
		return models.FormatXLS, nil
	default:
		return "", &parsererror.UnsupportedFormatError{FilePath: name, Extension: ext}
	}
}

// SupportedExtensions lists the accepted file extensions.
func SupportedExtensions() []string {
	return []string{".csv", ".xlsx", ".xls"}
}

package parser

import (
	"fmt"

	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
)

// NewParser returns the parser for format.
func NewParser(format models.Format, opts Options, logger logging.Logger) (Parser, error) {
	switch format {
	case models.FormatCSV:
		return &CSVParser{BaseParser: NewBaseParser(format, opts, logger)}, nil
	case models.FormatXLSX:
		return &XLSXParser{BaseParser: NewBaseParser(format, opts, logger)}, nil
	case models.FormatXLS:
		return &XLSParser{BaseParser: NewBaseParser(format, opts, logger)}, nil
	default:
		return nil, fmt.Errorf("unknown parser format: %s", format)
	}
}

// ForFile resolves the format from name and returns the matching parser.
// Options.Source is set to name.
func ForFile(name string, opts Options, logger logging.Logger) (Parser, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}
	opts.Source = name
	return NewParser(format, opts, logger)
}

package parser

import (
	"fmt"

	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/parsererror"
)

// BaseParser carries what every format parser shares: the logger, the
// options and the post-processing of raw rows.
//
// Parsers embed it:
//
//	type csvParser struct {
//		BaseParser
//	}
type BaseParser struct {
	logger logging.Logger
	format models.Format
	opts   Options
}

// NewBaseParser creates a BaseParser for one format. A nil logger gets the
// default adapter.
func NewBaseParser(format models.Format, opts Options, logger logging.Logger) BaseParser {
	return BaseParser{
		logger: logging.OrDefault(logger),
		format: format,
		opts:   opts.withDefaults(),
	}
}

// GetLogger returns the current logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// Format returns the format this parser reads.
func (b *BaseParser) Format() models.Format {
	return b.format
}

func (b *BaseParser) malformed(line int, err error) error {
	return &parsererror.MalformedInputError{
		FilePath: b.opts.Source,
		Format:   string(b.format),
		Line:     line,
		Err:      err,
	}
}

// finish drops fully blank rows and enforces the row cap.
func (b *BaseParser) finish(rows [][]string) ([][]string, error) {
	kept := rows[:0:0]
	for _, row := range rows {
		if models.IsBlankRow(row) {
			continue
		}
		kept = append(kept, row)
	}

	if len(kept) == 0 {
		return nil, &parsererror.EmptyDatasetError{FilePath: b.opts.Source, Reason: "file contains no rows"}
	}
	if b.opts.MaxRows > 0 && len(kept)-1 > b.opts.MaxRows {
		return nil, b.malformed(0, fmt.Errorf("%d data rows exceed the limit of %d", len(kept)-1, b.opts.MaxRows))
	}

	b.logger.Debug("Parsed tabular file",
		logging.F(logging.FieldFile, b.opts.Source),
		logging.F(logging.FieldFormat, string(b.format)),
		logging.F(logging.FieldRows, len(kept)),
		logging.F("blank_rows", len(rows)-len(kept)))

	return kept, nil
}

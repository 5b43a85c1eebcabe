package parser

import (
	"encoding/csv"
	"errors"
	"io"

	"fjacquet/shipsort/internal/logging"
)

// CSVParser reads delimiter-separated text with standard quoting. Rows may
// have differing widths.
type CSVParser struct {
	BaseParser
}

// Parse reads every record. The first reader error aborts the whole parse.
func (p *CSVParser) Parse(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.opts.Delimiter
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			p.logger.WithError(err).Warn("Rejecting malformed CSV",
				logging.F(logging.FieldFile, p.opts.Source),
				logging.F("line", line))
			return nil, p.malformed(line, err)
		}
		rows = append(rows, record)
	}

	return p.finish(rows)
}

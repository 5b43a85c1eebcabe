package parser

import (
	"errors"
	"io"

	"fjacquet/shipsort/internal/logging"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first worksheet of an Office Open XML workbook.
// Other sheets are ignored.
type XLSXParser struct {
	BaseParser
}

// Parse returns the first sheet's rows as formatted cell text.
func (p *XLSXParser) Parse(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, p.malformed(0, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.logger.WithError(cerr).Warn("Failed to close workbook",
				logging.F(logging.FieldFile, p.opts.Source))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, p.malformed(0, errors.New("workbook has no sheets"))
	}
	if len(sheets) > 1 {
		p.logger.Debug("Reading first sheet only",
			logging.F(logging.FieldFile, p.opts.Source),
			logging.F("sheet", sheets[0]),
			logging.F("ignored_sheets", len(sheets)-1))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, p.malformed(0, err)
	}

	return p.finish(rows)
}

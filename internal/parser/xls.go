package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fjacquet/shipsort/internal/logging"

	"github.com/extrame/xls"
)

// XLSParser reads the first worksheet of a legacy BIFF (.xls) workbook.
type XLSParser struct {
	BaseParser
}

// Parse decodes the workbook in memory. The decoder panics on some corrupt
// files; a panic is reported as malformed input.
func (p *XLSParser) Parse(r io.Reader) (rows [][]string, err error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, rerr := io.ReadAll(r)
		if rerr != nil {
			return nil, p.malformed(0, rerr)
		}
		rs = bytes.NewReader(data)
	}

	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("XLS decoder panicked",
				logging.F(logging.FieldFile, p.opts.Source),
				logging.F("panic", fmt.Sprint(rec)))
			rows = nil
			err = p.malformed(0, fmt.Errorf("xls decoder: %v", rec))
		}
	}()

	wb, err := xls.OpenReader(rs, p.opts.XLSCharset)
	if err != nil {
		return nil, p.malformed(0, err)
	}
	if wb.NumSheets() > 1 {
		p.logger.Debug("Reading first sheet only",
			logging.F(logging.FieldFile, p.opts.Source),
			logging.F("ignored_sheets", wb.NumSheets()-1))
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, p.malformed(0, errors.New("workbook has no sheets"))
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			// No row record: a blank row. finish drops blank rows anyway.
			continue
		}
		// LastCol is one past the last cell.
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}

	return p.finish(rows)
}

// sheetRow returns row i, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences the missing entry instead of returning nil.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

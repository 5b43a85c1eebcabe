// Package schema turns raw rows into a Dataset: the first row names the
// columns and every later row becomes a Record keyed by those names.
package schema

import (
	"io"
	"strings"

	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/parsererror"
)

const utf8BOM = "\ufeff"

// Normalizer builds datasets from parsed rows.
type Normalizer struct {
	logger logging.Logger
}

// NewNormalizer creates a Normalizer. A nil logger gets the default adapter.
func NewNormalizer(logger logging.Logger) *Normalizer {
	return &Normalizer{logger: logging.OrDefault(logger)}
}

var quiet = &Normalizer{logger: logging.NewLogrusAdapterWithOutput("error", "text", io.Discard)}

// Normalize is Normalizer.Normalize without a source name or logging.
func Normalize(rows [][]string) (*models.Dataset, error) {
	return quiet.Normalize("", rows)
}

// Normalize builds a dataset from rows. Row 0 is the header, kept verbatim
// except for a leading byte order mark. Each later row is zipped against the
// header: short rows are padded with "", extra cells are ignored, and rows
// that are blank after trimming are dropped. Trailing columns whose header
// and cells are all blank are removed.
//
// The returned Dataset has Fields and Records set; identity fields (ID,
// Source, Format) are left to the caller.
func (n *Normalizer) Normalize(source string, rows [][]string) (*models.Dataset, error) {
	if len(rows) == 0 {
		return nil, &parsererror.EmptyDatasetError{FilePath: source, Reason: "no header row"}
	}

	header := make([]string, len(rows[0]))
	copy(header, rows[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	width := usedWidth(header, rows[1:])
	if width == 0 {
		return nil, &parsererror.EmptyDatasetError{FilePath: source, Reason: "header row is blank"}
	}
	fields := header[:width:width]

	records := make([]models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := models.NewRecord(fields, row)
		if record.IsBlank() {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &parsererror.EmptyDatasetError{FilePath: source, Reason: "header row only"}
	}

	n.logger.Debug("Normalized dataset",
		logging.F(logging.FieldFile, source),
		logging.F(logging.FieldColumns, len(fields)),
		logging.F("dropped_columns", len(header)-width),
		logging.F(logging.FieldRecords, len(records)),
		logging.F("dropped_rows", len(rows)-1-len(records)))

	return &models.Dataset{Fields: fields, Records: records}, nil
}

// usedWidth returns the header width once trailing columns that are blank
// everywhere are cut off.
func usedWidth(header []string, data [][]string) int {
	width := len(header)
	for width > 0 && isBlankColumn(width-1, header, data) {
		width--
	}
	return width
}

func isBlankColumn(col int, header []string, data [][]string) bool {
	if strings.TrimSpace(header[col]) != "" {
		return false
	}
	for _, row := range data {
		if col < len(row) && strings.TrimSpace(row[col]) != "" {
			return false
		}
	}
	return true
}

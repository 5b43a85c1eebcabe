package invoice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"

	"fjacquet/shipsort/internal/currencyutils"
	"fjacquet/shipsort/internal/fileutils"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/textutils"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNoTransactions is returned when asked to invoice an empty selection.
var ErrNoTransactions = errors.New("no transactions to invoice")

// CSVExporter writes the selected transactions, header first, to
// <OutputDir>/<FileName(customer)>.
type CSVExporter struct {
	OutputDir    string
	AmountColumn string
	Delimiter    rune
	logger       logging.Logger
}

// NewCSVExporter creates a CSVExporter. A zero delimiter means ','.
func NewCSVExporter(outputDir, amountColumn string, delimiter rune, logger logging.Logger) *CSVExporter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVExporter{
		OutputDir:    outputDir,
		AmountColumn: amountColumn,
		Delimiter:    delimiter,
		logger:       logging.OrDefault(logger),
	}
}

// FileName returns the invoice file name for customer: the sanitized label
// plus the first 8 hex digits of a name-based UUID of the raw label. Labels
// that sanitize alike ("A/B", "A B") or differ only in case ("Acme",
// "acme") get distinct names.
func FileName(customer string) string {
	sum := uuid.NewSHA1(uuid.NameSpaceOID, []byte(customer)).String()
	return textutils.SafeFileName(customer) + "-" + sum[:8] + ".csv"
}

// Generate implements Generator.
func (e *CSVExporter) Generate(customer string, transactions []models.Record) (*Document, error) {
	if len(transactions) == 0 {
		return nil, ErrNoTransactions
	}

	path := filepath.Join(e.OutputDir, FileName(customer))
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			e.logger.WithError(cerr).Warn("Failed to close invoice file", logging.F(logging.FieldOutputFile, path))
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = e.Delimiter
	w := gocsv.NewSafeCSVWriter(csvWriter)

	if err := w.Write(transactions[0].Fields()); err != nil {
		return nil, fmt.Errorf("failed to write invoice header: %w", err)
	}
	for _, rec := range transactions {
		if err := w.Write(rec.Values()); err != nil {
			return nil, fmt.Errorf("failed to write invoice row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush invoice: %w", err)
	}

	total, skipped := SumAmounts(transactions, e.AmountColumn)
	doc := &Document{
		Customer: customer,
		Count:    len(transactions),
		Total:    total,
		Skipped:  skipped,
		Path:     path,
	}

	e.logger.Info("Invoice written",
		logging.F(logging.FieldCustomer, customer),
		logging.F(logging.FieldCount, doc.Count),
		logging.F("total", doc.Total.String()),
		logging.F(logging.FieldOutputFile, path))
	return doc, nil
}

// SumAmounts adds up the amountColumn cells that parse as amounts, with or
// without currency and thousands separators. Cells that are missing, blank
// or not numbers are counted in skipped, not rejected.
func SumAmounts(records []models.Record, amountColumn string) (total decimal.Decimal, skipped int) {
	total = decimal.Zero
	for _, rec := range records {
		cell, ok := rec.Get(amountColumn)
		if !ok {
			skipped++
			continue
		}
		amount, err := currencyutils.ParseAmount(cell)
		if err != nil {
			skipped++
			continue
		}
		total = total.Add(amount)
	}
	return total, skipped
}

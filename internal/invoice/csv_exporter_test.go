package invoice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(fields []string, rows ...[]string) []models.Record {
	out := make([]models.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.NewRecord(fields, r))
	}
	return out
}

func TestCSVExporter_Generate(t *testing.T) {
	dir := t.TempDir()
	mockLog := logging.NewMockLogger()
	exporter := NewCSVExporter(dir, "Amount", 0, mockLog)

	fields := []string{"Shippers Name", "Amount", "Note"}
	txs := records(fields,
		[]string{"Acme", "100", "first, with comma"},
		[]string{"Acme", "20.50", ""},
		[]string{"Acme", "n/a", "bad amount"},
	)

	doc, err := exporter.Generate("Acme", txs)
	require.NoError(t, err)

	assert.Equal(t, "Acme", doc.Customer)
	assert.Equal(t, 3, doc.Count)
	assert.True(t, decimal.RequireFromString("120.50").Equal(doc.Total))
	assert.Equal(t, 1, doc.Skipped)
	assert.Equal(t, filepath.Join(dir, "Acme-d63f15e5.csv"), doc.Path)

	content, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"Shippers Name,Amount,Note\nAcme,100,\"first, with comma\"\nAcme,20.50,\nAcme,n/a,bad amount\n",
		string(content))
	assert.True(t, mockLog.HasEntry("INFO", "Invoice written"))
}

func TestCSVExporter_DelimiterAndFileName(t *testing.T) {
	dir := t.TempDir()
	exporter := NewCSVExporter(filepath.Join(dir, "nested"), "Amount", ';', logging.NewMockLogger())

	doc, err := exporter.Generate("Acme, Inc.", records([]string{"Client", "Amount"}, []string{"Acme, Inc.", "1"}))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "nested", "Acme_Inc-4bd9d997.csv"), doc.Path)
	content, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "Client;Amount\nAcme, Inc.;1\n", string(content))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		customer string
		want     string
	}{
		{customer: "Acme", want: "Acme-d63f15e5.csv"},
		{customer: "acme", want: "acme-690c7235.csv"},
		{customer: "A/B", want: "A_B-129948c8.csv"},
		{customer: "A B", want: "A_B-094a1029.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.customer, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.customer))
		})
	}
}

func TestCSVExporter_CollidingLabelsKeepSeparateFiles(t *testing.T) {
	dir := t.TempDir()
	exporter := NewCSVExporter(dir, "Amount", ',', logging.NewMockLogger())
	fields := []string{"Customer", "Amount"}

	tests := []struct {
		name  string
		pairs [2]string
	}{
		{name: "same after sanitizing", pairs: [2]string{"A/B", "A B"}},
		{name: "differ only in case", pairs: [2]string{"Acme", "acme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := exporter.Generate(tt.pairs[0], records(fields, []string{tt.pairs[0], "1"}))
			require.NoError(t, err)
			second, err := exporter.Generate(tt.pairs[1], records(fields, []string{tt.pairs[1], "2"}))
			require.NoError(t, err)

			assert.NotEqual(t, strings.ToLower(first.Path), strings.ToLower(second.Path))

			content, err := os.ReadFile(first.Path)
			require.NoError(t, err)
			assert.Equal(t, "Customer,Amount\n"+tt.pairs[0]+",1\n", string(content))
		})
	}
}

func TestCSVExporter_NoTransactions(t *testing.T) {
	exporter := NewCSVExporter(t.TempDir(), "Amount", ',', logging.NewMockLogger())

	_, err := exporter.Generate("Acme", nil)
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestSumAmounts(t *testing.T) {
	fields := []string{"Customer", "Amount"}

	tests := []struct {
		name        string
		rows        [][]string
		column      string
		wantTotal   string
		wantSkipped int
	}{
		{name: "all numeric", rows: [][]string{{"A", "1.10"}, {"A", "2.20"}}, column: "Amount", wantTotal: "3.3"},
		{name: "negative and padded", rows: [][]string{{"A", " -5 "}, {"A", "10"}}, column: "Amount", wantTotal: "5"},
		{name: "blank cells skipped", rows: [][]string{{"A", ""}, {"A", "7"}}, column: "Amount", wantTotal: "7", wantSkipped: 1},
		{name: "formatted amounts", rows: [][]string{{"A", "CHF 1'000.50"}, {"A", "2,25"}}, column: "Amount", wantTotal: "1002.75"},
		{name: "not a number", rows: [][]string{{"A", "n/a"}, {"A", "3"}}, column: "Amount", wantTotal: "3", wantSkipped: 1},
		{name: "missing column", rows: [][]string{{"A", "1"}}, column: "Total", wantTotal: "0", wantSkipped: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, skipped := SumAmounts(records(fields, tt.rows...), tt.column)
			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(total), total.String())
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestCSVExporter_ImplementsGenerator(t *testing.T) {
	var _ Generator = &CSVExporter{}
}

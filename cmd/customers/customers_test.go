package customers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/shipsort/cmd/customers"
	"fjacquet/shipsort/internal/config"
	"fjacquet/shipsort/internal/container"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shipments = "Date,Customer,Amount\n2024-01-01,Acme Corp,10\n2024-01-02,Beta,5\n2024-01-03,Acme Corp,7\n2024-01-04,acme labs,1\n"

func setup(t *testing.T) (*container.Container, string) {
	t.Helper()
	cfg := &config.Config{
		Log:     config.LogConfig{Level: "info", Format: "text"},
		CSV:     config.CSVConfig{Delimiter: ","},
		Ingest:  config.IngestConfig{XLSCharset: "utf-8"},
		Invoice: config.InvoiceConfig{OutputDir: t.TempDir(), AmountColumn: "Amount"},
	}
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "shipments.csv")
	require.NoError(t, os.WriteFile(path, []byte(shipments), 0600))
	return c, path
}

func TestCustomersCommand_Flags(t *testing.T) {
	assert.Equal(t, "customers", customers.Cmd.Use)
	flag := customers.Cmd.Flags().Lookup("search")
	require.NotNil(t, flag)
	assert.Equal(t, "s", flag.Shorthand)
	format := customers.Cmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestRun_Text(t *testing.T) {
	c, path := setup(t)

	var out bytes.Buffer
	require.NoError(t, customers.Run(context.Background(), c, customers.Options{Input: path, Format: "text"}, &out))
	assert.Equal(t, "CUSTOMER   TRANSACTIONS\n"+
		"Acme Corp  2\n"+
		"Beta       1\n"+
		"acme labs  1\n"+
		"3 customers in column \"Customer\" of shipments.csv\n", out.String())
}

func TestRun_SearchRecordedInSession(t *testing.T) {
	c, path := setup(t)

	var out bytes.Buffer
	require.NoError(t, customers.Run(context.Background(), c, customers.Options{Input: path, Search: "ACME", Format: "csv"}, &out))
	assert.Equal(t, "customer,transactions\nAcme Corp,2\nacme labs,1\n", out.String())
	assert.Equal(t, "ACME", c.GetSession().Snapshot().Query)
}

func TestRun_JSONToFile(t *testing.T) {
	c, path := setup(t)
	output := filepath.Join(t.TempDir(), "out", "customers.json")

	var out bytes.Buffer
	require.NoError(t, customers.Run(context.Background(), c, customers.Options{Input: path, Output: output, Format: "json"}, &out))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var summary report.Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 4, summary.Records)
	assert.Len(t, summary.Customers, 3)
}

func TestRun_Errors(t *testing.T) {
	c, path := setup(t)
	unresolved := filepath.Join(t.TempDir(), "plain.csv")
	require.NoError(t, os.WriteFile(unresolved, []byte("Date,Amount\n2024,1\n"), 0600))

	tests := []struct {
		name string
		opts customers.Options
		msg  string
	}{
		{"bad format", customers.Options{Input: path, Format: "xml"}, `unsupported format "xml"`},
		{"unsupported file", customers.Options{Input: "ship.pdf", Format: "text"}, "Please upload a CSV, XLS or XLSX file."},
		{"unresolved column", customers.Options{Input: unresolved, Format: "text"}, "No customer column found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := customers.Run(context.Background(), c, tt.opts, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

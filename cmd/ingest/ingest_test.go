package ingest_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/shipsort/cmd/ingest"
	"fjacquet/shipsort/internal/config"
	"fjacquet/shipsort/internal/container"
	"fjacquet/shipsort/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{
		Log:     config.LogConfig{Level: "info", Format: "text"},
		CSV:     config.CSVConfig{Delimiter: ","},
		Ingest:  config.IngestConfig{XLSCharset: "utf-8"},
		Invoice: config.InvoiceConfig{OutputDir: t.TempDir(), AmountColumn: "Amount"},
	}
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestIngestCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "ingest", ingest.Cmd.Use)
	assert.Contains(t, ingest.Cmd.Short, "Load shipping files")
	assert.Contains(t, ingest.Cmd.Long, "Example")
	assert.NotNil(t, ingest.Cmd.RunE)
}

func TestRun_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ship.csv")
	require.NoError(t, os.WriteFile(path, []byte("Shippers Name,Amount\nAcme,1\nBeta,2\nAcme,3\n"), 0600))

	var out bytes.Buffer
	require.NoError(t, ingest.Run(context.Background(), newContainer(t), path, &out))
	assert.Equal(t, "ship.csv: 3 records, customer column \"Shippers Name\", 2 customers\n", out.String())
}

func TestRun_DirectoryKeepsGoingAfterFailures(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"good.csv":  "Shippers Name,Amount\nAcme,1\nBeta,2\n",
		"bad.csv":   "Customer,Amount\nAcme,\"1\n",
		"none.csv":  "Date,Amount\n2024-01-01,1\n",
		"notes.txt": "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}

	var out bytes.Buffer
	err := ingest.Run(context.Background(), newContainer(t), dir, &out)
	require.Error(t, err)
	assert.Equal(t, "1 of 3 files failed", err.Error())

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "bad.csv: Error processing file. Please upload it again.", string(lines[0]))
	assert.Equal(t, "good.csv: 2 records, customer column \"Shippers Name\", 2 customers", string(lines[1]))
	assert.Contains(t, string(lines[2]), "none.csv: 1 records, No customer column found.")
}

func TestRun_NoInput(t *testing.T) {
	err := ingest.Run(context.Background(), newContainer(t), "", &bytes.Buffer{})
	assert.ErrorContains(t, err, "input file is required")
}

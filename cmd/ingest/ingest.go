// Package ingest handles the ingest command
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/shipsort/cmd/common"
	"fjacquet/shipsort/cmd/root"
	"fjacquet/shipsort/internal/container"
	"fjacquet/shipsort/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load shipping files and report their customer column",
	Long: `Load one shipping file, or every CSV, XLS and XLSX file of a directory,
and report for each the record count, the resolved customer column and the
number of distinct customers.

Example:
  shipsort ingest -i shipments.xlsx
  shipsort ingest -i exports/`,
	RunE: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	return Run(cmd.Context(), c, root.SharedFlags.Input, cmd.OutOrStdout())
}

// Run ingests input and writes one summary line per file. Every file is
// attempted; the returned error counts the failures.
func Run(ctx context.Context, c *container.Container, input string, out io.Writer) error {
	logger := c.GetLogger()
	files, err := common.InputFiles(input)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		name := filepath.Base(path)
		res, err := common.Upload(ctx, c.GetSession(), path, logger)
		if err != nil {
			failed++
			logger.WithError(err).Warn("Ingest failed", logging.F(logging.FieldFile, path))
			fmt.Fprintf(out, "%s: %s\n", name, common.Message(err))
			continue
		}
		if !res.CustomersEnabled() {
			fmt.Fprintf(out, "%s: %d records, %s\n", name, res.Dataset.Len(), common.Message(res.Index.Err()))
			continue
		}
		fmt.Fprintf(out, "%s: %d records, customer column %q, %d customers\n",
			name, res.Dataset.Len(), res.Role.Field, res.Index.Len())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// Package customers handles the customers command
package customers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"fjacquet/shipsort/cmd/common"
	"fjacquet/shipsort/cmd/root"
	"fjacquet/shipsort/internal/container"
	"fjacquet/shipsort/internal/fileutils"
	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/report"

	"github.com/spf13/cobra"
)

var (
	search string
	format string
)

// Cmd represents the customers command
var Cmd = &cobra.Command{
	Use:   "customers",
	Short: "List the customers of a shipping file",
	Long: `List the distinct customers of a shipping file with their transaction
counts, optionally filtered by a case-insensitive search.

Example:
  shipsort customers -i shipments.csv --search acme
  shipsort customers -i shipments.csv --format json -o customers.json`,
	RunE: customersFunc,
}

func init() {
	Cmd.Flags().StringVarP(&search, "search", "s", "", "Only list customers containing this text")
	Cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, csv, json or yaml")
}

func customersFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	return Run(cmd.Context(), c, Options{
		Input:  root.SharedFlags.Input,
		Output: root.SharedFlags.Output,
		Search: search,
		Format: format,
	}, cmd.OutOrStdout())
}

// Options are the customers command inputs.
type Options struct {
	Input  string
	Output string
	Search string
	Format string
}

// Run loads opts.Input and writes its customer summary to opts.Output, or
// to out when no output file is given.
func Run(ctx context.Context, c *container.Container, opts Options, out io.Writer) error {
	logger := c.GetLogger()
	if opts.Format != "text" && !slices.Contains(report.Formats(), opts.Format) {
		return fmt.Errorf("unsupported format %q", opts.Format)
	}

	res, err := common.Upload(ctx, c.GetSession(), opts.Input, logger)
	if err != nil {
		return common.UserError(logger, err)
	}
	if _, err := c.GetSession().Search(opts.Search); err != nil {
		return common.UserError(logger, err)
	}
	summary := report.NewSummary(res, opts.Search)

	var data []byte
	if opts.Format == "text" {
		data, err = renderText(summary)
	} else {
		data, err = c.GetReportGenerator().GenerateReport(summary, opts.Format)
	}
	if err != nil {
		return err
	}

	if opts.Output == "" {
		_, err = out.Write(data)
		return err
	}
	file, err := fileutils.CreateFile(opts.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close output file")
		}
	}()
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	logger.Info("Customer list written",
		logging.F(logging.FieldOutputFile, opts.Output),
		logging.F(logging.FieldCount, len(summary.Customers)))
	return nil
}

func renderText(summary *report.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CUSTOMER\tTRANSACTIONS")
	for _, row := range summary.Customers {
		fmt.Fprintf(w, "%s\t%d\n", row.Customer, row.Transactions)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "%d customers in column %q of %s\n", len(summary.Customers), summary.Column, summary.Source)
	return buf.Bytes(), nil
}

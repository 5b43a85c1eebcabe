// Package selection handles the select command
package selection

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"fjacquet/shipsort/cmd/common"
	"fjacquet/shipsort/cmd/root"
	"fjacquet/shipsort/internal/container"
	"fjacquet/shipsort/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var (
	customerLabel string
	writeInvoice  bool
)

// Cmd represents the select command
var Cmd = &cobra.Command{
	Use:   "select",
	Short: "Show the transactions of one customer",
	Long: `Print every transaction of one customer as CSV, in file order, and
optionally export them as an invoice file.

Example:
  shipsort select -i shipments.xlsx --customer "Acme Corp"
  shipsort select -i shipments.xlsx --customer "Acme Corp" --invoice`,
	RunE: selectFunc,
}

func init() {
	Cmd.Flags().StringVarP(&customerLabel, "customer", "c", "", "Customer label, exactly as listed by the customers command")
	Cmd.Flags().BoolVar(&writeInvoice, "invoice", false, "Also write an invoice file to the configured output directory")
	_ = Cmd.MarkFlagRequired("customer")
}

func selectFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	return Run(cmd.Context(), c, root.SharedFlags.Input, customerLabel, writeInvoice, cmd.OutOrStdout())
}

// Run loads input, selects label and prints its transactions to out.
func Run(ctx context.Context, c *container.Container, input, label string, invoice bool, out io.Writer) error {
	logger := c.GetLogger()
	sess := c.GetSession()

	if _, err := common.Upload(ctx, sess, input, logger); err != nil {
		return common.UserError(logger, err)
	}
	records, err := sess.Select(label)
	if err != nil {
		return common.UserError(logger, err)
	}
	if err := WriteRecords(out, records, c.GetConfig().Delimiter()); err != nil {
		return err
	}

	if !invoice {
		return nil
	}
	doc, err := sess.Invoice(c.GetInvoiceGenerator())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Invoice for %s: %d transactions, total %s, written to %s\n",
		doc.Customer, doc.Count, doc.Total.StringFixed(2), doc.Path)
	return nil
}

// WriteRecords writes the header of the first record followed by every
// record's values. Nothing is written for an empty slice.
func WriteRecords(out io.Writer, records []models.Record, delimiter rune) error {
	if len(records) == 0 {
		return nil
	}
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = delimiter
	w := gocsv.NewSafeCSVWriter(csvWriter)

	if err := w.Write(records[0].Fields()); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rec.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

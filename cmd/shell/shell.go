// Package shell handles the interactive shell command
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/shipsort/cmd/common"
	"fjacquet/shipsort/cmd/root"
	"fjacquet/shipsort/cmd/selection"
	"fjacquet/shipsort/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the shell command
var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse customers interactively",
	Long: `Start an interactive session: load a file, search customers, select one,
show its transactions and write its invoice. Loading a new file replaces the
current one along with the search and the selection.

Example:
  shipsort shell -i shipments.csv`,
	RunE: shellFunc,
}

const helpText = `Commands:
  load <file>       load a CSV, XLS or XLSX file
  search [text]     list customers containing text (all when empty)
  select <customer> select a customer
  show              print the selected customer's transactions
  invoice           write the selected customer's invoice
  status            show what is loaded
  clear             drop the loaded file
  help              show this help
  quit              leave the shell
`

func shellFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	return Run(cmd.Context(), c, root.SharedFlags.Input, cmd.InOrStdin(), cmd.OutOrStdout())
}

// Run reads commands from in until EOF or quit. A non-empty input is loaded
// first.
func Run(ctx context.Context, c *container.Container, input string, in io.Reader, out io.Writer) error {
	sh := &Shell{container: c, out: out}
	if input != "" {
		sh.Execute(ctx, "load "+input)
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if !sh.Execute(ctx, scanner.Text()) {
			return nil
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

// Shell executes one command line at a time against the container session.
type Shell struct {
	container *container.Container
	out       io.Writer
}

// Execute runs line and reports whether the shell should keep going.
// Command errors are printed, never returned.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	sess := s.container.GetSession()
	logger := s.container.GetLogger()

	switch name {
	case "":
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprint(s.out, helpText)
	case "load":
		path := strings.TrimSpace(arg)
		if path == "" {
			fmt.Fprintln(s.out, "usage: load <file>")
			break
		}
		res, err := common.Upload(ctx, sess, path, logger)
		if err != nil {
			s.fail(err)
			break
		}
		if !res.CustomersEnabled() {
			fmt.Fprintf(s.out, "Loaded %d records. %s\n", res.Dataset.Len(), common.Message(res.Index.Err()))
			break
		}
		fmt.Fprintf(s.out, "Loaded %d records, %d customers in column %q.\n",
			res.Dataset.Len(), res.Index.Len(), res.Role.Field)
	case "search":
		labels, err := sess.Search(arg)
		if err != nil {
			s.fail(err)
			break
		}
		for _, label := range labels {
			fmt.Fprintln(s.out, label)
		}
		fmt.Fprintf(s.out, "%d customers\n", len(labels))
	case "select":
		records, err := sess.Select(arg)
		if err != nil {
			s.fail(err)
			break
		}
		label, _, _ := sess.Selected()
		fmt.Fprintf(s.out, "Selected %s: %d transactions\n", label, len(records))
	case "show":
		_, records, err := sess.Selected()
		if err != nil {
			s.fail(err)
			break
		}
		if err := selection.WriteRecords(s.out, records, s.container.GetConfig().Delimiter()); err != nil {
			s.fail(err)
		}
	case "invoice":
		doc, err := sess.Invoice(s.container.GetInvoiceGenerator())
		if err != nil {
			s.fail(err)
			break
		}
		fmt.Fprintf(s.out, "Invoice for %s: %d transactions, total %s, written to %s\n",
			doc.Customer, doc.Count, doc.Total.StringFixed(2), doc.Path)
	case "status":
		s.status()
	case "clear":
		sess.Clear()
		fmt.Fprintln(s.out, "Cleared.")
	default:
		fmt.Fprintf(s.out, "unknown command %q, type help\n", name)
	}
	return true
}

func (s *Shell) status() {
	st := s.container.GetSession().Snapshot()
	if !st.Loaded() {
		fmt.Fprintln(s.out, "No file loaded.")
		return
	}
	res := st.Result
	fmt.Fprintf(s.out, "File: %s (%s, %d records)\n", res.Dataset.Source, res.Dataset.Format, res.Dataset.Len())
	fmt.Fprintf(s.out, "Customer column: %s\n", res.Role)
	if st.Query != "" {
		fmt.Fprintf(s.out, "Search: %q\n", st.Query)
	}
	if st.Selection != "" {
		fmt.Fprintf(s.out, "Selected: %s\n", st.Selection)
	}
}

func (s *Shell) fail(err error) {
	fmt.Fprintln(s.out, common.UserError(s.container.GetLogger(), err))
}

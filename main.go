// Package main provides the entry point for the shipsort CLI application.
package main

import (
	"fmt"
	"os"

	"fjacquet/shipsort/cmd/customers"
	"fjacquet/shipsort/cmd/ingest"
	"fjacquet/shipsort/cmd/root"
	"fjacquet/shipsort/cmd/rules"
	"fjacquet/shipsort/cmd/selection"
	"fjacquet/shipsort/cmd/shell"
)

func init() {
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(customers.Cmd)
	root.Cmd.AddCommand(selection.Cmd)
	root.Cmd.AddCommand(shell.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package rules handles the rules command
package rules

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/shipsort/cmd/root"
	"fjacquet/shipsort/internal/container"
	"fjacquet/shipsort/internal/resolver"
	"fjacquet/shipsort/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	writePath string
	headers   string
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Show or export the customer column rules",
	Long: `Print the active customer column rules in priority order, test them
against a header line, or write the built-in rules to a file to start a
custom rules file.

Example:
  shipsort rules
  shipsort rules --resolve "Date,Shippers Name,Amount"
  shipsort rules --write config/rules.yaml`,
	RunE: rulesFunc,
}

func init() {
	Cmd.Flags().StringVar(&writePath, "write", "", "Write the built-in rules to this file")
	Cmd.Flags().StringVar(&headers, "resolve", "", "Comma-separated header names to resolve")
}

func rulesFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	out := cmd.OutOrStdout()
	switch {
	case writePath != "":
		return Write(c, writePath, out)
	case headers != "":
		return Resolve(c, strings.Split(headers, ","), out)
	default:
		return Print(c, out)
	}
}

// Print writes the active rules as YAML.
func Print(c *container.Container, out io.Writer) error {
	data, err := yaml.Marshal(store.RulesConfig{Rules: c.GetResolver().Rules()})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// Resolve reports which header the active rules pick.
func Resolve(c *container.Container, fields []string, out io.Writer) error {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	role := c.GetResolver().Resolve(fields)
	if !role.Resolved() {
		fmt.Fprintln(out, "No customer column found.")
		return nil
	}
	fmt.Fprintf(out, "Column %d %q (rule %s, confidence %.2f)\n", role.Index, role.Field, role.Rule, role.Confidence)
	return nil
}

// Write saves the built-in rules to path.
func Write(c *container.Container, path string, out io.Writer) error {
	if err := store.NewRuleStore(path, c.GetLogger()).SaveRules(resolver.DefaultRules()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d rules to %s\n", len(resolver.DefaultRules()), path)
	return nil
}

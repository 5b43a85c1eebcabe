// Package report renders the customer summary of a dataset for export.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"fjacquet/shipsort/internal/customer"
	"fjacquet/shipsort/internal/ingest"
	"fjacquet/shipsort/internal/logging"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Row is one customer line of a summary.
type Row struct {
	Customer     string `csv:"customer" json:"customer" yaml:"customer"`
	Transactions int    `csv:"transactions" json:"transactions" yaml:"transactions"`
}

// Summary lists the customers of a dataset with their transaction counts.
type Summary struct {
	DatasetID string `json:"dataset_id" yaml:"dataset_id"`
	Source    string `json:"source" yaml:"source"`
	Column    string `json:"column" yaml:"column"`
	Records   int    `json:"records" yaml:"records"`
	Query     string `json:"query,omitempty" yaml:"query,omitempty"`
	Customers []Row  `json:"customers" yaml:"customers"`
}

// NewSummary builds the summary of res, restricted to the labels matching
// query (all labels when query is empty).
func NewSummary(res *ingest.Result, query string) *Summary {
	s := &Summary{
		DatasetID: res.Dataset.ID,
		Source:    res.Dataset.Source,
		Column:    res.Role.String(),
		Records:   res.Dataset.Len(),
		Query:     query,
		Customers: []Row{},
	}
	matched := make(map[string]bool)
	for _, label := range customer.Search(res.Index.Labels(), query) {
		matched[label] = true
	}
	for _, entry := range res.Index.Entries() {
		if matched[entry.Label] {
			s.Customers = append(s.Customers, Row{Customer: entry.Label, Transactions: entry.Count})
		}
	}
	return s
}

// Generator renders summaries in csv, json or yaml.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logging.OrDefault(logger).WithField("component", "ReportGenerator")}
}

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{"csv", "json", "yaml"}
}

// GenerateReport renders summary in format. CSV output holds the customer
// rows only.
func (g *Generator) GenerateReport(summary *Summary, format string) ([]byte, error) {
	switch format {
	case "csv":
		return g.generateCSVReport(summary)
	case "json":
		return g.generateJSONReport(summary)
	case "yaml":
		return g.generateYAMLReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateCSVReport(summary *Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.MarshalCSV(summary.Customers, gocsv.NewSafeCSVWriter(csv.NewWriter(&buf))); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) generateJSONReport(summary *Summary) ([]byte, error) {
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateYAMLReport(summary *Summary) ([]byte, error) {
	out, err := yaml.Marshal(summary)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

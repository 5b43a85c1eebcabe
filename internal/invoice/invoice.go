// Package invoice defines the outbound collaborator that receives a selected
// customer's transactions, and a CSV implementation of it.
package invoice

import (
	"github.com/shopspring/decimal"

	"fjacquet/shipsort/internal/models"
)

// Document describes what a Generator produced.
type Document struct {
	Customer string
	Count    int
	// Total sums the parseable cells of the amount column.
	Total decimal.Decimal
	// Skipped counts records whose amount cell was missing or not a number.
	Skipped int
	Path    string
}

// Generator turns one customer's transactions into an invoice artifact.
// Transactions arrive in dataset order.
type Generator interface {
	Generate(customer string, transactions []models.Record) (*Document, error)
}

package invoice

import (
	"sync"

	"fjacquet/shipsort/internal/models"
)

// MockGenerator records calls for tests.
type MockGenerator struct {
	mu    sync.Mutex
	Calls []MockCall
	Err   error
}

// MockCall is one captured Generate call.
type MockCall struct {
	Customer     string
	Transactions []models.Record
}

// Generate implements Generator.
func (m *MockGenerator) Generate(customer string, transactions []models.Record) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Customer: customer, Transactions: transactions})
	if m.Err != nil {
		return nil, m.Err
	}
	return &Document{Customer: customer, Count: len(transactions)}, nil
}

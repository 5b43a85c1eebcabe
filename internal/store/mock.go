package store

import (
	"fjacquet/shipsort/internal/resolver"
)

// MockRuleStore is a RuleLoader for tests.
type MockRuleStore struct {
	Rules          []resolver.Rule
	LoadRulesError error
}

// LoadRules returns a copy of the mock rules.
func (m *MockRuleStore) LoadRules() ([]resolver.Rule, error) {
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	out := make([]resolver.Rule, len(m.Rules))
	copy(out, m.Rules)
	return out, nil
}

// Package resolver decides which header column carries the customer
// identity of a dataset.
package resolver

import (
	"fmt"
	"strings"

	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/textutils"
)

// Rule matches a header name when the folded name contains every keyword.
type Rule struct {
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Confidence float64  `yaml:"confidence"`
}

// Matches reports whether field satisfies the rule.
func (r Rule) Matches(field string) bool {
	if len(r.Keywords) == 0 {
		return false
	}
	for _, kw := range r.Keywords {
		if !textutils.ContainsFold(field, kw) {
			return false
		}
	}
	return true
}

// Validate checks that a rule can match something.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rule name must not be empty")
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("rule %q has no keywords", r.Name)
	}
	for _, kw := range r.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("rule %q has a blank keyword", r.Name)
		}
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("rule %q confidence %.2f is outside [0,1]", r.Name, r.Confidence)
	}
	return nil
}

// DefaultRules returns the built-in rules, highest priority first.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "shipper-name", Keywords: []string{"shipper", "name"}, Confidence: 1.0},
		{Name: "customer", Keywords: []string{"customer"}, Confidence: 0.8},
		{Name: "client", Keywords: []string{"client"}, Confidence: 0.6},
	}
}

// Resolver applies an ordered rule list to a header row.
type Resolver struct {
	rules  []Rule
	logger logging.Logger
}

// New creates a Resolver. With no rules the defaults are used.
func New(logger logging.Logger, rules ...Rule) *Resolver {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Resolver{rules: owned, logger: logging.OrDefault(logger)}
}

// Rules returns a copy of the rules in priority order.
func (r *Resolver) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Resolve picks the customer column. Rules are tried in order and, within a
// rule, headers left to right; the first hit wins. When nothing matches the
// result is models.Unresolved.
func (r *Resolver) Resolve(fields []string) models.ColumnRole {
	for _, rule := range r.rules {
		for i, field := range fields {
			if !rule.Matches(field) {
				continue
			}
			role := models.ColumnRole{Field: field, Index: i, Rule: rule.Name, Confidence: rule.Confidence}
			r.logger.Debug("Resolved customer column",
				logging.F(logging.FieldColumn, field),
				logging.F(logging.FieldRule, rule.Name),
				logging.F("index", i))
			return role
		}
	}

	r.logger.Info("No customer column found",
		logging.F(logging.FieldColumns, len(fields)))
	return models.Unresolved
}

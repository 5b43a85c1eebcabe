// Package store loads and saves the customer-column resolver rules.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/resolver"

	"gopkg.in/yaml.v3"
)

// RuleLoader is what the resolver wiring needs from a store.
type RuleLoader interface {
	LoadRules() ([]resolver.Rule, error)
}

// RulesConfig is the on-disk layout of a rules file.
type RulesConfig struct {
	Rules []resolver.Rule `yaml:"rules"`
}

// RuleStore manages the YAML rules file.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for rulesFile. An empty name means the
// built-in rules are used.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	return &RuleStore{RulesFile: rulesFile, logger: logging.OrDefault(logger)}
}

// FindConfigFile looks for filename as given, then under ./config, then
// under ~/.config/shipsort.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "shipsort", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules returns the configured rules in priority order. Without a rules
// file the defaults are returned. A configured file that is missing,
// unreadable or invalid is an error: silently falling back would change
// which column is picked.
func (s *RuleStore) LoadRules() ([]resolver.Rule, error) {
	if s.RulesFile == "" {
		return resolver.DefaultRules(), nil
	}

	filePath, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("rules file %s not found: %w", s.RulesFile, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	rules, err := parseRules(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
	}

	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rules file %s, rule %d: %w", filePath, i+1, err)
		}
	}

	s.logger.Debug("Loaded resolver rules",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rules)))
	return rules, nil
}

// parseRules accepts either a top-level "rules:" key or a bare list.
func parseRules(data []byte) ([]resolver.Rule, error) {
	var cfg RulesConfig
	cfgErr := yaml.Unmarshal(data, &cfg)
	if cfgErr == nil && len(cfg.Rules) > 0 {
		return cfg.Rules, nil
	}

	var rules []resolver.Rule
	listErr := yaml.Unmarshal(data, &rules)
	if listErr == nil && len(rules) > 0 {
		return rules, nil
	}

	if cfgErr != nil && listErr != nil {
		return nil, cfgErr
	}
	return nil, errors.New("no rules defined")
}

// SaveRules writes rules to the configured file, creating parent
// directories as needed.
func (s *RuleStore) SaveRules(rules []resolver.Rule) error {
	if s.RulesFile == "" {
		return errors.New("no rules file configured")
	}

	dir := filepath.Dir(s.RulesFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(RulesConfig{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	if err := os.WriteFile(s.RulesFile, data, 0644); err != nil {
		return fmt.Errorf("error writing rules: %w", err)
	}

	s.logger.Debug("Saved resolver rules",
		logging.F(logging.FieldFile, s.RulesFile),
		logging.F(logging.FieldCount, len(rules)))
	return nil
}

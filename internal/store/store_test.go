package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/shipsort/internal/logging"
	"fjacquet/shipsort/internal/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
}

func TestNewRuleStore(t *testing.T) {
	store := NewRuleStore("rules.yaml", nil)
	assert.Equal(t, "rules.yaml", store.RulesFile)
	assert.NotNil(t, store.logger)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "rules: []")

	store := NewRuleStore("", logging.NewMockLogger())

	file, err := store.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = store.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRules_DefaultsWithoutFile(t *testing.T) {
	rules, err := NewRuleStore("", logging.NewMockLogger()).LoadRules()
	require.NoError(t, err)
	assert.Equal(t, resolver.DefaultRules(), rules)
}

func TestLoadRules_Formats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "top level key",
			content: `rules:
  - name: consignee
    keywords: ["consignee"]
    confidence: 0.9
  - name: client
    keywords: ["client"]
    confidence: 0.5
`,
		},
		{
			name: "bare list",
			content: `- name: consignee
  keywords: ["consignee"]
  confidence: 0.9
- name: client
  keywords: ["client"]
  confidence: 0.5
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "rules.yaml")
			writeFile(t, file, tt.content)

			rules, err := NewRuleStore(file, logging.NewMockLogger()).LoadRules()
			require.NoError(t, err)
			require.Len(t, rules, 2)
			assert.Equal(t, "consignee", rules[0].Name)
			assert.Equal(t, []string{"consignee"}, rules[0].Keywords)
			assert.Equal(t, 0.9, rules[0].Confidence)
			assert.Equal(t, "client", rules[1].Name)
		})
	}
}

func TestLoadRules_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "rules: [unclosed", wantErr: "error parsing rules file"},
		{name: "empty list", content: "rules: []", wantErr: "no rules defined"},
		{name: "rule without keywords", content: "rules:\n  - name: bad\n", wantErr: "has no keywords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "rules.yaml")
			writeFile(t, file, tt.content)

			_, err := NewRuleStore(file, logging.NewMockLogger()).LoadRules()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("missing configured file", func(t *testing.T) {
		store := NewRuleStore(filepath.Join(t.TempDir(), "missing.yaml"), logging.NewMockLogger())
		_, err := store.LoadRules()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveRules_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "rules.yaml")
	store := NewRuleStore(file, logging.NewMockLogger())

	require.NoError(t, store.SaveRules(resolver.DefaultRules()))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var cfg RulesConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Len(t, cfg.Rules, 3)

	loaded, err := store.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, resolver.DefaultRules(), loaded)
}

func TestSaveRules_NoFile(t *testing.T) {
	err := NewRuleStore("", logging.NewMockLogger()).SaveRules(resolver.DefaultRules())
	assert.ErrorContains(t, err, "no rules file configured")
}

func TestMockRuleStore(t *testing.T) {
	mock := &MockRuleStore{Rules: resolver.DefaultRules()}
	rules, err := mock.LoadRules()
	require.NoError(t, err)
	rules[0].Name = "changed"
	assert.Equal(t, "shipper-name", mock.Rules[0].Name)

	var _ RuleLoader = mock
	var _ RuleLoader = &RuleStore{}
}

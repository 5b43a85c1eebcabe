package textutils_test

import (
	"testing"

	"fjacquet/shipsort/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, textutils.Fold("ACME"), textutils.Fold("acme"))
	assert.Equal(t, textutils.Fold("Straße"), textutils.Fold("STRASSE"))
	assert.Equal(t, "", textutils.Fold(""))
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		substr   string
		expected bool
	}{
		{name: "same case", s: "Shippers Name", substr: "name", expected: true},
		{name: "upper haystack", s: "SHIPPERS NAME", substr: "shipper", expected: true},
		{name: "upper needle", s: "client id", substr: "CLIENT", expected: true},
		{name: "empty needle", s: "anything", substr: "", expected: true},
		{name: "missing", s: "Order #", substr: "customer", expected: false},
		{name: "accented", s: "CAFÉ CLIENT", substr: "café", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.ContainsFold(tt.s, tt.substr))
		})
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Acme", expected: "Acme"},
		{input: "  Acme, Inc. ", expected: "Acme_Inc"},
		{input: "a/b\\c", expected: "a_b_c"},
		{input: "Zürich-Nord AG", expected: "Zürich-Nord_AG"},
		{input: "../../etc", expected: "etc"},
		{input: "   ", expected: "unnamed"},
		{input: "***", expected: "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.SafeFileName(tt.input))
		})
	}
}

// Package currencyutils parses the amount cells found in shipping exports.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned for blank cells.
var ErrEmptyAmount = errors.New("empty amount")

var (
	currencySymbols = regexp.MustCompile(`\p{Sc}`)
	currencyCodes   = regexp.MustCompile(`\b[A-Z]{3}\b`)
	spaces          = regexp.MustCompile(`[\s\x{00A0}\x{202F}]`)
)

// ParseAmount parses an amount written as "1,234.56", "1.234,56",
// "CHF 1'234.56", "-12.50" or "(12.50)". Parentheses mean negative.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount rewrites amountStr into the form decimal.NewFromString
// accepts. Currency symbols, ISO codes, spaces and apostrophe separators are
// dropped. When both '.' and ',' appear the last one is the decimal mark; a
// lone ',' is decimal only when followed by one or two digits.
func StandardizeAmount(amountStr string) string {
	s := currencySymbols.ReplaceAllString(amountStr, "")
	s = currencyCodes.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "")
	s = strings.NewReplacer("'", "", "’", "").Replace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	if negative && s != "" {
		s = "-" + s
	}
	return s
}

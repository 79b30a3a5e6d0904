// Package currencyutils provides amount normalization for broker export
// files, built on shopspring decimal for exact money arithmetic.
package currencyutils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a raw amount string into a signed decimal.
// It strips dollar signs, commas and whitespace, and treats a value
// wrapped in parentheses, or prefixed with '-', as negative.
// An unparseable remainder yields zero, never an error: a bad amount
// must not corrupt a parse, only default toward zero.
func ParseAmount(amountStr string) decimal.Decimal {
	s := strings.TrimSpace(amountStr)
	if s == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimPrefix(s, "-")
	}

	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return dec.Neg()
	}
	return dec
}

// ParseQuantity parses a quantity cell into a non-negative integer.
// Fractional quantities are truncated; garbage yields zero.
func ParseQuantity(quantityStr string) int {
	s := strings.TrimSpace(quantityStr)
	if s == "" {
		return 0
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return -n
		}
		return n
	}

	// Some brokers export quantities with decimals ("1.00").
	dec, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	n := int(dec.IntPart())
	if n < 0 {
		return -n
	}
	return n
}

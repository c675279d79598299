package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents.
type Money int64

var hundred = decimal.NewFromInt(100)

// FromDecimal converts a decimal amount in currency units to cents, rounding half away from zero.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(hundred).Round(0).IntPart())
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with two decimals, e.g. "-12.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Format renders the amount followed by the currency code or symbol.
func Format(m Money, currency string) string {
	if currency == "" {
		return m.String()
	}

	return fmt.Sprintf("%s %s", m.String(), currency)
}

// Parse reads an amount written with a dot or comma decimal separator, optionally grouped
// with the other one ("1234.56", "1,234.56", "1.234,56", "-588,74") and returns it in cents.
// When both separators appear the last one is the decimal point. A lone separator followed
// by exactly three digits ("1,234", "1.234") could be either and is rejected.
func Parse(s string) (Money, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, fmt.Errorf("parsing amount: empty input")
	}

	normalized, err := normalize(clean)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return FromDecimal(d), nil
}

// normalize rewrites s with a dot decimal point and no grouping.
func normalize(s string) (string, error) {
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	var decSep, groupSep string

	switch {
	case lastComma >= 0 && lastDot >= 0:
		decSep, groupSep = ".", ","
		if lastComma > lastDot {
			decSep, groupSep = ",", "."
		}
	case lastComma >= 0:
		decSep, groupSep = ",", "."
		if strings.Count(s, ",") > 1 {
			decSep, groupSep = "", ","
		}
	case lastDot >= 0:
		decSep, groupSep = ".", ","
		if strings.Count(s, ".") > 1 {
			decSep, groupSep = "", "."
		}
	default:
		return sign + s, nil
	}

	intPart, frac := s, ""

	if decSep != "" {
		i := strings.LastIndex(s, decSep)
		intPart, frac = s[:i], s[i+1:]

		if strings.Contains(frac, groupSep) || strings.Contains(intPart, decSep) {
			return "", errors.New("misplaced separator")
		}

		if !strings.Contains(intPart, groupSep) && len(frac) == 3 && len(intPart) >= 1 && len(intPart) <= 3 && intPart != "0" {
			return "", errors.New("ambiguous separator, write the decimals explicitly")
		}
	}

	if strings.Contains(intPart, groupSep) {
		groups := strings.Split(intPart, groupSep)
		if len(groups[0]) < 1 || len(groups[0]) > 3 {
			return "", errors.New("invalid digit grouping")
		}

		for _, g := range groups[1:] {
			if len(g) != 3 {
				return "", errors.New("invalid digit grouping")
			}
		}

		intPart = strings.Join(groups, "")
	}

	if frac == "" {
		return sign + intPart, nil
	}

	return sign + intPart + "." + frac, nil
}

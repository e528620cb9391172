// Package extract pulls structured fields out of raw banking messages.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches a decimal amount with two fraction digits,
// optionally preceded by a currency marker. Thousands separators are
// allowed in the integer part and stripped before parsing.
var amountPattern = regexp.MustCompile(`(?i)(?:rs\.?|inr\.?|₹)?\s*([\d,]+\.\d{2})`)

// Amount returns the first monetary amount found in the message, leftmost
// match wins. Messages carrying several amounts deliberately yield only the
// first; callers wanting more must not rely on this function. The boolean
// reports whether an amount was present at all.
func Amount(message string) (decimal.Decimal, bool) {
	m := amountPattern.FindStringSubmatch(message)
	if m == nil {
		return decimal.Decimal{}, false
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return amount, true
}

package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a display amount string to a decimal. It strips
// thousands separators, whitespace and currency noise before conversion.
// Empty or non-numeric input yields zero, matching how blank ledger cells
// are compared during duplicate detection.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "원", "")
	amount = strings.ReplaceAll(amount, "₩", "")

	if amount == "" {
		return decimal.Zero
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// FormatAmount renders an amount for a ledger cell. Zero renders as the
// empty string: the ledger leaves the unused side of an income/expense pair
// blank rather than writing 0.
func FormatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

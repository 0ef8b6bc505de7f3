package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks bare JSON numbers for amounts, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// FormatAmount renders an amount with two decimal places, prefixed by
// the currency symbol ("£100.42"). Unknown currencies fall back to the
// ISO code.
func FormatAmount(currency string, amount decimal.Decimal) string {
	if symbol, ok := currencySymbols[currency]; ok {
		return symbol + amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}

// FromMinorUnits converts a gateway amount in minor units (pence) to a
// decimal major-unit amount.
func FromMinorUnits(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}

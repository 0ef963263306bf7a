package fields

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary value and rounds it half-up to two decimal
// places. Values using a comma as decimal separator ("1.234,56") are
// accepted alongside plain decimals ("1234.56"); in the comma form any
// period is treated as a thousands separator and discarded.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := Normalize(s)
	v := raw
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, &InvalidAmountError{Value: raw}
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, &NonPositiveAmountError{Value: raw}
	}
	// Round is half away from zero, which is half-up for positive amounts.
	return d.Round(2), nil
}

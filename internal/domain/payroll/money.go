package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads an operator-typed amount. Decimal comma and decimal
// point are both accepted; whitespace is trimmed; anything unparsable
// coerces to 0 rather than erroring.
func ParseAmount(value string) float64 {
	trimmed := strings.TrimSpace(strings.Replace(value, ",", ".", 1))
	if trimmed == "" {
		return 0
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0
	}
	return parsed.InexactFloat64()
}

func round2(value decimal.Decimal) float64 {
	return value.Round(2).InexactFloat64()
}

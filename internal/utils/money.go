package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount accepts the loose monetary strings the frontends send
// ("1500", "1,500.00", " 1500.5 ") and returns a fixed-point decimal.
// Floats never enter the money path.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d, nil
}

// FormatAmount keeps consistent two-decimal formatting for currency fields.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

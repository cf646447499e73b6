package pumpy

import (
	"strings"

	"github.com/shopspring/decimal"
)

// truncateValue formats v the way Pump 11 firmware reads numbers: truncated
// (not rounded) to two decimal places and at most five characters, with
// trailing zeros, a dangling decimal point, and leading zeros removed.
// PHD2000 dialects reuse it so mixed chains stay at Pump 11 precision.
func truncateValue(v float64) string {
	s := decimal.NewFromFloat(v).Truncate(2).String()
	if len(s) > 5 {
		s = strings.TrimRight(s[:5], "0")
		s = strings.TrimSuffix(s, ".")
	}
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

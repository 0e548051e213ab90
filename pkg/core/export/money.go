package export

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundAmount rounds to cents with decimal arithmetic so exported cells do
// not carry binary floating-point residue.
func RoundAmount(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// FormatAmount renders an amount as "1,234,567.89". Undefined values
// (infinite break-even) render as "n/a".
func FormatAmount(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "n/a"
	}
	s := decimal.NewFromFloat(f).Round(2).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}
	return sign + b.String() + "." + frac
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(f float64) string {
	return decimal.NewFromFloat(f).Round(2).StringFixed(2) + " %"
}

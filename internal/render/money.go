package render

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// LedgerGlyph replaces the decimal point in printed money values.
const LedgerGlyph = "="

// Money formats v in the ledger convention: grouped thousands, two fraction
// digits and "=" for the decimal point, e.g. 14700 -> "14,700=00" and
// -400 -> "-400=00". Values are rounded half away from zero.
func Money(v float64) string {
	d := toDecimal(v).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + group(intPart) + LedgerGlyph + frac
}

// SignedMoney prefixes Money with an explicit "+ " or "- " mark.
func SignedMoney(sign string, v float64) string {
	return sign + " " + Money(v)
}

// Fixed2 formats v with exactly two decimals and no grouping.
func Fixed2(v float64) string {
	return toDecimal(v).StringFixed(2)
}

// Number formats v rounded to two places in its shortest form: 20, 2.5, 1500.
func Number(v float64) string {
	return toDecimal(v).Round(2).String()
}

func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

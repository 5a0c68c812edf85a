package query

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a monetary value as "₹1,234.56": rupee sign, comma
// grouped integer part, always two decimal places.
func FormatAmount(v decimal.Decimal) string {
	fixed := v.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart, fracPart = fixed[:dot], fixed[dot:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(fracPart)
	return b.String()
}

// pluralize appends "s" for counts other than one.
func pluralize(count int, noun string) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}

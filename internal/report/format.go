package report

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Number renders v rounded to places decimals with thousands separators.
func Number(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	neg := d.IsNegative()
	d = d.Abs()

	whole := d.Truncate(0)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(humanize.BigComma(whole.BigInt()))
	if places > 0 {
		frac := d.Sub(whole).StringFixed(places)
		b.WriteString(strings.TrimPrefix(frac, "0"))
	}
	return b.String()
}

// Money renders a currency amount as "$ 1,234.56".
func Money(v float64, places int32) string {
	return "$ " + Number(v, places)
}

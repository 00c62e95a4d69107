package domain

import (
	"fmt"
	"strings"
)

// FormatUSD renders an amount as a display string like "$1,234.50".
// Display only: stored values stay plain decimals.
func FormatUSD(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-$" + b.String() + "." + frac
	}
	return "$" + b.String() + "." + frac
}

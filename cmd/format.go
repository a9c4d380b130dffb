package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatPrice renders an amount the Norwegian way: "kr 9 001 000", with
// digits grouped by spaces and decimals only when the amount has them.
func formatPrice(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := int64(amount)
	frac := amount - float64(whole)

	grouped := groupDigits(strconv.FormatInt(whole, 10))
	out := "kr " + grouped
	if frac > 1e-9 {
		cents := int(math.Round(frac * 100))
		if cents == 100 {
			// Rounding carried into the next krone.
			grouped = groupDigits(strconv.FormatInt(whole+1, 10))
			out = "kr " + grouped
		} else {
			out = fmt.Sprintf("kr %s,%02d", grouped, cents)
		}
	}
	if negative {
		return "-" + out
	}
	return out
}

// groupDigits inserts a space every three digits from the right.
func groupDigits(digits string) string {
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
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

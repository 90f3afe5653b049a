// Package currency formats Rupiah amounts for display.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatIDR renders an integer Rupiah amount with Indonesian digit grouping and no
// fractional digits, e.g. 1500000 -> "Rp 1.500.000".
func FormatIDR(amount int64) string {
	p := message.NewPrinter(language.Indonesian)
	if amount < 0 {
		return p.Sprintf("-Rp %d", -amount)
	}
	return p.Sprintf("Rp %d", amount)
}

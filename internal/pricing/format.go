package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiah = message.NewPrinter(language.Indonesian)

// FormatRupiah rounds to whole currency units and groups digits the Indonesian
// way, e.g. 46142.86 becomes "Rp 46.143".
func FormatRupiah(amount float64) string {
	return rupiah.Sprintf("Rp %d", int64(math.Round(Sanitize(amount, AllowNegative(), WithMin(-MaxAmount)))))
}

// FormatPercent renders a percentage with no decimals, as the calculator shows markup.
func FormatPercent(value float64) string {
	return rupiah.Sprintf("%d%%", int64(math.Round(value)))
}

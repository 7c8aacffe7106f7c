package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount in whole rupees with en-IN digit grouping.
func FormatINR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "₹" + inrPrinter.Sprintf("%d", amount)
}

// FormatSignedINR rounds delta and always shows its sign, e.g. "+₹850" or "-₹1,500".
func FormatSignedINR(delta float64) string {
	rounded := int64(math.Round(delta))
	if rounded >= 0 {
		return "+" + FormatINR(rounded)
	}
	return FormatINR(rounded)
}

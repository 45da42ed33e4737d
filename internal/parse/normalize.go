package parse

import "strings"

// Persian and Arabic-Indic glyphs share the same decimal values but
// different code points, so both sets map onto ASCII digits.
var digitReplacer = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// Normalize maps Persian and Arabic-Indic digit glyphs to ASCII digits.
// All other characters pass through unchanged.
func Normalize(s string) string {
	return digitReplacer.Replace(s)
}

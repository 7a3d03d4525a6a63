package dashboard

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Percent renders a value that is already a percentage, as the API sent it.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Fraction renders a 0..1 fraction as a percentage rounded to two decimals.
func Fraction(f float64) string {
	return Percent(math.Round(f*10000) / 100)
}

// Count renders an integer with English digit grouping, e.g. 1,234.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// OneDecimal rounds half away from zero to one decimal place.
func OneDecimal(v float64) string {
	return fmt.Sprintf("%.1f", math.Round(v*10)/10)
}

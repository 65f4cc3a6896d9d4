package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NA is rendered in place of any missing optional field.
const NA = "N/A"

const (
	dateLayout  = "Jan 2, 2006"
	clockLayout = "3:04:05 PM"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a two-decimal price, or N/A when absent.
// Zero is treated as absent to match how providers report missing quotes.
func FormatPrice(v *float64) string {
	if v == nil || *v == 0 {
		return NA
	}
	return fmt.Sprintf("%.2f", *v)
}

// FormatDollars renders a price with a dollar sign, or N/A when absent.
func FormatDollars(v *float64) string {
	p := FormatPrice(v)
	if p == NA {
		return p
	}
	return "$" + p
}

// FormatSigned renders v with an explicit sign and two decimals.
// Non-finite values render as +Inf, -Inf or NaN.
func FormatSigned(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return fmt.Sprintf("%+.2f", v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatVolume renders a provider-reported volume, or N/A when absent.
func FormatVolume(v *float64) string {
	if v == nil || *v == 0 {
		return NA
	}
	return FormatCount(int64(math.Round(*v)))
}

// FormatDate renders t as a short month/day/year date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NA
	}
	return t.Format(dateLayout)
}

// FormatClock renders the wall-clock time of t.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return NA
	}
	return t.Format(clockLayout)
}

// OrNA returns s, or N/A when s is empty.
func OrNA(s string) string {
	if s == "" {
		return NA
	}
	return s
}

func formatNumber(v *float64, suffix string) string {
	if v == nil {
		return NA
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + suffix
}

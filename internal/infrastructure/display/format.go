// Package display implements the card formatting contract: date and time
// strings, day-bucket labels, locale currency and relative "updated" ages.
// Everything here degrades to an empty string instead of failing; a record
// with broken temporal fields must still render as a card.
package display

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jetcheck/listing-engine/internal/infrastructure/timeutil"
)

// dateLayout renders "09 Aug 2025". Month abbreviations come from Go's layout
// engine; the locale printer covers digits, grouping and currency symbols.
const dateLayout = "02 Jan 2006"

// timeLayout renders 24-hour "HH:MM".
const timeLayout = "15:04"

// Formatter produces the display strings consumed by card rendering.
type Formatter struct {
	printer  *message.Printer
	resolver *timeutil.Resolver
}

// NewFormatter creates a Formatter for the given locale. The resolver supplies
// the viewer-local fallback zone for records without their own timezone.
func NewFormatter(locale language.Tag, resolver *timeutil.Resolver) *Formatter {
	if resolver == nil {
		resolver = timeutil.NewResolver(nil)
	}
	return &Formatter{
		printer:  message.NewPrinter(locale),
		resolver: resolver,
	}
}

// Date formats the instant as "DD Mon YYYY" in the record timezone, falling
// back to the viewer zone. A zero instant yields an empty string.
func (f *Formatter) Date(t time.Time, tz string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(timeutil.LocationOrDefault(tz, f.resolver.Viewer())).Format(dateLayout)
}

// TimeOfDay formats the instant as 24-hour "HH:MM" in the record timezone.
// A zero instant yields an empty string.
func (f *Formatter) TimeOfDay(t time.Time, tz string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(timeutil.LocationOrDefault(tz, f.resolver.Viewer())).Format(timeLayout)
}

// DayBucket returns the literal Today/Tomorrow/Upcoming label for the instant.
func (f *Formatter) DayBucket(t time.Time, tz string, now time.Time) string {
	return string(f.resolver.DayBucket(t, tz, now))
}

// Money formats an amount as locale currency with zero fractional digits,
// e.g. "€12,000". An unknown currency code falls back to EUR; a negative
// amount is clamped to zero, savings are never negative on a card.
func (f *Formatter) Money(amount float64, code string) string {
	if amount < 0 {
		amount = 0
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.EUR
	}
	return f.printer.Sprintf("%v%v",
		currency.Symbol(unit),
		number.Decimal(amount, number.MaxFractionDigits(0)),
	)
}

// RelativeAge renders how long ago the instant was, in coarsening units:
// seconds, then minutes, then hours, then days. A zero instant or one in the
// future yields an empty string.
func (f *Formatter) RelativeAge(t, now time.Time) string {
	if t.IsZero() || t.After(now) {
		return ""
	}
	elapsed := now.Sub(t)

	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}

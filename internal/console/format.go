package console

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format renders money, percentages and dates for one locale.
type Format struct {
	printer    *message.Printer
	dateLayout string
	currency   string
}

// NewFormat returns a Format for the BCP 47 tag lang.
func NewFormat(lang, dateLayout, currency string) (*Format, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, errors.Wrapf(err, "parse locale %q", lang)
	}
	return &Format{
		printer:    message.NewPrinter(tag),
		dateLayout: dateLayout,
		currency:   currency,
	}, nil
}

// Money renders v with two fraction digits and the currency symbol.
func (f *Format) Money(v decimal.Decimal) string {
	return f.fixed(v) + " " + f.currency
}

// Percent renders v with two fraction digits.
func (f *Format) Percent(v decimal.Decimal) string {
	return f.fixed(v) + " %"
}

// Int renders n with locale digit grouping.
func (f *Format) Int(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Date renders t in the configured layout.
func (f *Format) Date(t time.Time) string {
	return t.Format(f.dateLayout)
}

// DateLayout returns the layout used by Date and expected by ParseDate.
func (f *Format) DateLayout() string {
	return f.dateLayout
}

// ParseDate parses s in the configured layout as a local date.
func (f *Format) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(f.dateLayout, s, time.Local)
}

func (f *Format) fixed(v decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

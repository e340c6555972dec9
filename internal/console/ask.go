package console

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Asker wraps a Prompter with typed questions that re-prompt until the answer
// parses and lies within bounds.
type Asker struct {
	Prompter
	out *Printer
}

// NewAsker returns an Asker that reports rejected answers on out.
func NewAsker(p Prompter, out *Printer) *Asker {
	return &Asker{Prompter: p, out: out}
}

// Text asks for a non-empty line unless optional is set.
func (a *Asker) Text(ctx context.Context, message, initial string, optional bool) (string, error) {
	for {
		s, err := a.Input(ctx, message, initial)
		if err != nil {
			return "", err
		}
		s = strings.TrimSpace(s)
		if s != "" || optional {
			return s, nil
		}
		a.out.Error("Eingabe darf nicht leer sein.")
	}
}

// Int asks for an integer in [lo, hi].
func (a *Asker) Int(ctx context.Context, message string, initial, lo, hi int) (int, error) {
	for {
		s, err := a.Input(ctx, message, strconv.Itoa(initial))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			a.out.Error("Bitte eine ganze Zahl eingeben.")
			continue
		}
		if n < lo || n > hi {
			a.out.Error("Bitte eine Zahl zwischen %d und %d eingeben.", lo, hi)
			continue
		}
		return n, nil
	}
}

// Decimal asks for a number in [lo, hi]. A decimal comma is accepted.
func (a *Asker) Decimal(ctx context.Context, message string, initial, lo, hi decimal.Decimal) (decimal.Decimal, error) {
	for {
		s, err := a.Input(ctx, message, initial.String())
		if err != nil {
			return decimal.Zero, err
		}
		v, err := ParseDecimal(s)
		if err != nil {
			a.out.Error("Bitte eine Zahl eingeben.")
			continue
		}
		if v.LessThan(lo) || v.GreaterThan(hi) {
			a.out.Error("Bitte eine Zahl zwischen %s und %s eingeben.", lo, hi)
			continue
		}
		return v, nil
	}
}

// Date asks for a date in the printer's date layout.
func (a *Asker) Date(ctx context.Context, message string, initial time.Time) (time.Time, error) {
	f := a.out.Format()
	for {
		s, err := a.Input(ctx, message, f.Date(initial))
		if err != nil {
			return time.Time{}, err
		}
		t, err := f.ParseDate(strings.TrimSpace(s))
		if err != nil {
			a.out.Error("Bitte ein Datum im Format %s eingeben.", f.Date(time.Date(2006, 1, 2, 0, 0, 0, 0, time.Local)))
			continue
		}
		return t, nil
	}
}

// ParseDecimal parses s with either a decimal point or a decimal comma.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

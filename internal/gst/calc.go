package gst

import (
	"errors"
	"math"
	"strings"
)

// DefaultRate is the rate applied when the caller provides none and no active
// category matches the description.
const DefaultRate = 18.0

// Mode selects whether the input amount is pre-tax or tax-inclusive.
type Mode string

const (
	// ModeExclusive treats the amount as net; tax is added on top.
	ModeExclusive Mode = "exclusive"
	// ModeInclusive treats the amount as gross; tax is extracted from it.
	ModeInclusive Mode = "inclusive"
)

// ErrInvalidMode is returned for any mode other than exclusive/inclusive.
var ErrInvalidMode = errors.New("gst: mode must be 'exclusive' or 'inclusive'")

// ParseMode normalises a mode string. The empty string defaults to exclusive.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ModeExclusive):
		return ModeExclusive, nil
	case string(ModeInclusive):
		return ModeInclusive, nil
	default:
		return "", ErrInvalidMode
	}
}

// Breakdown holds the three computed amounts of a calculation.
type Breakdown struct {
	Net   float64
	GST   float64
	Gross float64
}

// Compute derives net/gst/gross for the given amount, mode, and rate percent.
// In exclusive mode the net keeps the full input precision; only gst and
// gross are rounded. In inclusive mode the gross keeps the input precision.
func Compute(amount float64, mode Mode, ratePercent float64) Breakdown {
	r := ratePercent / 100
	if mode == ModeInclusive {
		gross := amount
		net := roundMoney(gross / (1 + r))
		return Breakdown{
			Net:   net,
			GST:   roundMoney(gross - net),
			Gross: gross,
		}
	}
	net := amount
	gstAmount := roundMoney(net * r)
	return Breakdown{
		Net:   net,
		GST:   gstAmount,
		Gross: roundMoney(net + gstAmount),
	}
}

// roundMoney rounds to two decimal places, half away from zero. The rounding
// rule is fixed so audit rows stay reproducible from the documented formulas.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package pricing computes booking totals. All amounts are integer NPR in the
// smallest unit; fractional results round down.
package pricing

import (
	"math"
	"time"
)

// TaxRatePercent is the government tax applied on the base cost.
const TaxRatePercent = 13

// Nights returns the chargeable night count for a stay, the ceiling of the
// day difference, never less than one. Callers validate checkOut > checkIn.
func Nights(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}

	return nights
}

// Base returns the pre-tax cost for the given night count.
func Base(nights int, nightlyRate int64) int64 {
	return int64(nights) * nightlyRate
}

// Tax returns the tax amount on a base cost, rounded down.
func Tax(base int64) int64 {
	return base * TaxRatePercent / 100
}

// Total returns floor(base * 1.13): the base cost plus tax, rounded down.
func Total(nights int, nightlyRate int64) int64 {
	base := Base(nights, nightlyRate)

	return base + Tax(base)
}

// Quote is the full price breakdown for a stay.
type Quote struct {
	Nights int   `json:"nights"`
	Base   int64 `json:"base"`
	Tax    int64 `json:"tax"`
	Total  int64 `json:"total"`
}

// NewQuote prices a stay at the given nightly rate.
func NewQuote(checkIn, checkOut time.Time, nightlyRate int64) Quote {
	nights := Nights(checkIn, checkOut)
	base := Base(nights, nightlyRate)
	tax := Tax(base)

	return Quote{
		Nights: nights,
		Base:   base,
		Tax:    tax,
		Total:  base + tax,
	}
}

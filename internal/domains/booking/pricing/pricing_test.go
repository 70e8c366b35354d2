package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"merobooking/internal/domains/booking/pricing"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		expected int
	}{
		{
			name:     "single night",
			checkIn:  "2026-03-01",
			checkOut: "2026-03-02",
			expected: 1,
		},
		{
			name:     "three nights",
			checkIn:  "2026-03-01",
			checkOut: "2026-03-04",
			expected: 3,
		},
		{
			name:     "same day clamps to one night",
			checkIn:  "2026-03-01",
			checkOut: "2026-03-01",
			expected: 1,
		},
		{
			name:     "across month boundary",
			checkIn:  "2026-02-27",
			checkOut: "2026-03-02",
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.Nights(date(tt.checkIn), date(tt.checkOut)))
		})
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		nights   int
		rate     int64
		expected int64
	}{
		{
			name:     "one night at 1000",
			nights:   1,
			rate:     1000,
			expected: 1130,
		},
		{
			name:     "three nights at 85000",
			nights:   3,
			rate:     85000,
			expected: 288150,
		},
		{
			name:     "tax fraction rounds down",
			nights:   1,
			rate:     999,
			expected: 999 + 129, // 999*0.13 = 129.87
		},
		{
			name:     "zero rate",
			nights:   5,
			rate:     0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.Total(tt.nights, tt.rate))
		})
	}
}

func TestNewQuote(t *testing.T) {
	quote := pricing.NewQuote(date("2026-03-01"), date("2026-03-04"), 85000)

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, int64(255000), quote.Base)
	assert.Equal(t, int64(33150), quote.Tax)
	assert.Equal(t, int64(288150), quote.Total)
	assert.Equal(t, quote.Base+quote.Tax, quote.Total)
}

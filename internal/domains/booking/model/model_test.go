package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merobooking/internal/domains/booking/model"
	"merobooking/shared/constant"
)

func TestNewBookingID(t *testing.T) {
	seen := make(map[string]struct{})

	for range 100 {
		id := model.NewBookingID()

		assert.Regexp(t, `^BK-[0-9A-Z]{5}$`, id)

		seen[id] = struct{}{}
	}

	// 100 draws from a 36^5 space should essentially never collide.
	assert.Greater(t, len(seen), 95)
}

func TestBooking_IsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{constant.BookingStatusPending, false},
		{constant.BookingStatusConfirmed, false},
		{constant.BookingStatusCompleted, true},
		{constant.BookingStatusCancelled, true},
		{constant.BookingStatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			booking := model.Booking{Status: tt.status}

			assert.Equal(t, tt.terminal, booking.IsTerminal())
		})
	}
}

package model

import (
	"crypto/rand"
	"math/big"
	"time"

	"merobooking/shared/constant"
	"merobooking/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldUserID        = "user_id"
	FieldGuestName     = "guest_name"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldTotalPrice    = "total_price"
	FieldStatus        = "status"
	FieldPaymentMethod = "payment_method"
	FieldPaymentStatus = "payment_status"
	FieldCreatedAt     = "created_at"
)

const idCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Booking is a reservation of one unit of a room type for a half-open date
// range [CheckIn, CheckOut). GuestName is snapshotted at creation time.
type Booking struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	UserID        string    `db:"user_id"`
	GuestName     string    `db:"guest_name"`
	CheckIn       time.Time `db:"check_in"`
	CheckOut      time.Time `db:"check_out"`
	TotalPrice    int64     `db:"total_price"`
	Status        string    `db:"status"`
	PaymentMethod string    `db:"payment_method"`
	PaymentStatus string    `db:"payment_status"`
	model.Metadata
}

// IsTerminal reports whether the booking status admits no further transitions.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case constant.BookingStatusRejected, constant.BookingStatusCancelled, constant.BookingStatusCompleted:
		return true
	}

	return false
}

// NewBookingID generates a reservation code like "BK-7G2XG".
func NewBookingID() string {
	suffix := make([]byte, constant.BookingIDSuffixLength)

	for i := range suffix {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(idCharset))))
		if err != nil {
			// crypto/rand only fails when the platform's entropy source is broken
			panic(err)
		}

		suffix[i] = idCharset[idx.Int64()]
	}

	return constant.BookingIDPrefix + string(suffix)
}

package model

import "merobooking/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldRoomID    = "room_id"
	FieldUserID    = "user_id"
	FieldUserName  = "user_name"
	FieldRating    = "rating"
	FieldComment   = "comment"
)

// Review is one guest's verdict on one completed stay. RoomID and UserName
// are denormalized so reviews survive room or account changes.
type Review struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	RoomID    string `db:"room_id"`
	UserID    string `db:"user_id"`
	UserName  string `db:"user_name"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	model.Metadata
}

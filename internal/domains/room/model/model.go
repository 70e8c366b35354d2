package model

import (
	"github.com/lib/pq"

	"merobooking/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPricePerNight = "price_per_night"
	FieldCapacity      = "capacity"
	FieldTotalStock    = "total_stock"
	FieldFacilityIDs   = "facility_ids"
	FieldImage         = "image"
)

// Room is a bookable room type; TotalStock counts identical physical units.
type Room struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	PricePerNight int64          `db:"price_per_night"`
	Capacity      int            `db:"capacity"`
	TotalStock    int            `db:"total_stock"`
	FacilityIDs   pq.StringArray `db:"facility_ids"`
	Image         string         `db:"image"`
	model.Metadata
}

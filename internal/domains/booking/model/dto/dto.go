package dto

import (
	"time"

	"merobooking/internal/domains/booking/model"
	"merobooking/internal/domains/booking/pricing"
	"merobooking/shared"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
	gModel "merobooking/shared/model"
	"merobooking/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID        string `json:"room_id"        validate:"required"`
	CheckIn       string `json:"check_in"       validate:"required,datetime=2006-01-02"`
	CheckOut      string `json:"check_out"      validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CASH ESEWA KHALTI"`
}

func (c *CreateBookingRequest) ToModel(id, userID, guestName string, checkIn, checkOut time.Time, totalPrice int64, status, paymentStatus string) model.Booking {
	return model.Booking{
		ID:            id,
		RoomID:        c.RoomID,
		UserID:        userID,
		GuestName:     guestName,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		TotalPrice:    totalPrice,
		Status:        status,
		PaymentMethod: c.PaymentMethod,
		PaymentStatus: paymentStatus,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type EditBookingDatesRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type QuoteResponse struct {
	RoomID   string `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	pricing.Quote
}

type BookingResponse struct {
	ID            string `json:"id"`
	RoomID        string `json:"room_id"`
	UserID        string `json:"user_id"`
	GuestName     string `json:"guest_name"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	TotalPrice    int64  `json:"total_price"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.UserID = model.UserID
	r.GuestName = model.GuestName
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.PaymentMethod = model.PaymentMethod
	r.PaymentStatus = model.PaymentStatus
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to the booking events topic.
type BookingEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	BookingID     string `json:"booking_id"`
	RoomID        string `json:"room_id"`
	UserID        string `json:"user_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	OccurredAt    string `json:"occurred_at"`
}

const (
	EventTypeBookingCreated       = "booking.created"
	EventTypeBookingUpdated       = "booking.updated"
	EventTypeBookingStatusChanged = "booking.status_changed"
)

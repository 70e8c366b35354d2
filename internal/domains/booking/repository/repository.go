package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"merobooking/infras/otel"
	"merobooking/infras/postgres"
	"merobooking/internal/domains/booking/model"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
	gRepo "merobooking/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

// New builds the booking store. Bookings are never physically deleted;
// cancellation is a status transition, so the interface exposes no Delete.
func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OverlapFilter matches active bookings of a room whose half-open date range
// [check_in, check_out) intersects the queried range. excludeBookingID, when
// set, removes one booking from consideration (used when editing its dates).
func OverlapFilter(roomID string, checkIn, checkOut time.Time, excludeBookingID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorNotIn,
			Value:    []string{constant.BookingStatusCancelled, constant.BookingStatusRejected},
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldCheckIn,
			Operator: gDto.FilterOperatorLess,
			Value:    checkOut,
			ArgName:  "query_check_out",
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldCheckOut,
			Operator: gDto.FilterOperatorGreater,
			Value:    checkIn,
			ArgName:  "query_check_in",
			Table:    model.TableName,
		},
	}

	if excludeBookingID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeBookingID,
			ArgName:  "exclude_id",
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

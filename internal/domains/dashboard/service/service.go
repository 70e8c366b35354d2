package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"merobooking/infras/otel"
	bookingModel "merobooking/internal/domains/booking/model"
	bookingRepo "merobooking/internal/domains/booking/repository"
	"merobooking/internal/domains/dashboard/model/dto"
	roomRepo "merobooking/internal/domains/room/repository"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
	"merobooking/shared/timezone"
)

type Dashboard interface {
	GetStats(ctx context.Context) (dto.DashboardStatsResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, otel otel.Otel) Dashboard {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		otel:        otel,
	}
}

// GetStats aggregates the operational counters shown on the admin dashboard.
// Occupancy counts stays that span today: checked in on or before today and
// not yet checked out.
func (s *serviceImpl) GetStats(ctx context.Context) (res dto.DashboardStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	newBookings, err := s.bookingRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			bookingFilter(bookingModel.FieldCreatedAt, gDto.FilterOperatorGreaterEq, now.Add(-24*time.Hour), "created_since"),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count new bookings")

		return res, fmt.Errorf("failed to count new bookings: %w", err)
	}

	upcoming, err := s.bookingRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			bookingFilter(bookingModel.FieldStatus, gDto.FilterOperatorEq, constant.BookingStatusConfirmed, "status"),
			bookingFilter(bookingModel.FieldCheckIn, gDto.FilterOperatorGreaterEq, today, "today_start"),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count upcoming check-ins")

		return res, fmt.Errorf("failed to count upcoming check-ins: %w", err)
	}

	occupied, err := s.bookingRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			bookingFilter(bookingModel.FieldStatus, gDto.FilterOperatorEq, constant.BookingStatusConfirmed, "status"),
			bookingFilter(bookingModel.FieldCheckIn, gDto.FilterOperatorLessEq, today, "occupied_start"),
			bookingFilter(bookingModel.FieldCheckOut, gDto.FilterOperatorGreater, today, "occupied_end"),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count occupied rooms")

		return res, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	checkingOut, err := s.bookingRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			bookingFilter(bookingModel.FieldStatus, gDto.FilterOperatorEq, constant.BookingStatusConfirmed, "status"),
			bookingFilter(bookingModel.FieldCheckOut, gDto.FilterOperatorGreaterEq, today, "checkout_start"),
			bookingFilter(bookingModel.FieldCheckOut, gDto.FilterOperatorLess, tomorrow, "checkout_end"),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count departures")

		return res, fmt.Errorf("failed to count departures: %w", err)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	totalStock := 0
	for _, room := range rooms {
		totalStock += room.TotalStock
	}

	available := totalStock - occupied
	if available < 0 {
		available = 0
	}

	res = dto.DashboardStatsResponse{
		NewBookings:      newBookings,
		UpcomingCheckIns: upcoming,
		OccupiedRooms:    occupied,
		CheckingOutToday: checkingOut,
		AvailableRooms:   available,
	}

	return res, nil
}

func bookingFilter(field, operator string, value any, argName string) gDto.Filter {
	return gDto.Filter{
		Field:    field,
		Operator: operator,
		Value:    value,
		Table:    bookingModel.TableName,
		ArgName:  argName,
	}
}

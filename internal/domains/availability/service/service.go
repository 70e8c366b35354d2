package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"merobooking/infras/otel"
	bookingRepository "merobooking/internal/domains/booking/repository"
	roomModel "merobooking/internal/domains/room/model"
	roomRepository "merobooking/internal/domains/room/repository"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
)

// Availability answers "which rooms cannot host this date range". A room type
// is unavailable when it has no stock at all, or when the active bookings
// overlapping the range already consume every unit.
type Availability interface {
	FindUnavailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]string, error)
	IsRoomAvailable(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)
}

type serviceImpl struct {
	roomRepo    roomRepository.Room
	bookingRepo bookingRepository.Booking
	otel        otel.Otel
}

func New(roomRepo roomRepository.Room, bookingRepo bookingRepository.Booking, otel otel.Otel) Availability {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) FindUnavailableRooms(ctx context.Context, checkIn, checkOut time.Time) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindUnavailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for availability check")

		return nil, fmt.Errorf("failed to get rooms for availability check: %w", err)
	}

	res = []string{}

	for _, room := range rooms {
		available, err := s.IsRoomAvailable(ctx, room, checkIn, checkOut, constant.Empty)
		if err != nil {
			return nil, err
		}

		if !available {
			res = append(res, room.ID)
		}
	}

	return res, nil
}

func (s *serviceImpl) IsRoomAvailable(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time, excludeBookingID string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	// A room type with no units can never be booked, regardless of overlaps.
	if room.TotalStock <= 0 {
		return false, nil
	}

	count, err := s.bookingRepo.Count(ctx, bookingRepository.OverlapFilter(room.ID, checkIn, checkOut, excludeBookingID))
	if err != nil {
		log.Error().Err(err).Str("roomID", room.ID).Msg("failed to count overlapping bookings")

		return false, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count < room.TotalStock, nil
}

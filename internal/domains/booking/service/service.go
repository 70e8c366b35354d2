package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"merobooking/config"
	"merobooking/infras/kafka"
	"merobooking/infras/otel"
	availabilityService "merobooking/internal/domains/availability/service"
	"merobooking/internal/domains/booking/model"
	"merobooking/internal/domains/booking/model/dto"
	"merobooking/internal/domains/booking/pricing"
	"merobooking/internal/domains/booking/repository"
	"merobooking/internal/domains/payment"
	roomModel "merobooking/internal/domains/room/model"
	roomRepository "merobooking/internal/domains/room/repository"
	"merobooking/shared"
	"merobooking/shared/cache"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
	"merobooking/shared/failure"
	"merobooking/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Quote(ctx context.Context, roomID, checkIn, checkOut string) (dto.QuoteResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Checkout(ctx context.Context, id string) error
	EditDates(ctx context.Context, req dto.EditBookingDatesRequest, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepository.Room
	availability availabilityService.Availability
	gateway      payment.Gateway
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepository.Room,
	availability availabilityService.Availability,
	gateway payment.Gateway,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		availability: availability,
		gateway:      gateway,
		kafka:        kafkaClient,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	guestName, _ := ctx.Value(constant.ContextKeyUserName).(string)

	checkIn, checkOut, err := parseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	room, err := s.getRoom(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	// Client-side availability results are advisory only; the decision is made here.
	available, err := s.availability.IsRoomAvailable(ctx, room, checkIn, checkOut, constant.Empty)
	if err != nil {
		return res, err
	}

	if !available {
		return res, failure.Conflict("room is not available for the selected dates") // nolint:wrapcheck
	}

	quote := pricing.NewQuote(checkIn, checkOut, room.PricePerNight)

	status := constant.BookingStatusPending
	paymentStatus := constant.PaymentStatusPending
	chargeReference := constant.Empty

	if req.PaymentMethod != constant.PaymentMethodCash {
		charge, err := s.gateway.Charge(ctx, req.PaymentMethod, quote.Total, userID, constant.Empty)
		if err != nil {
			log.Error().Err(err).Str("method", req.PaymentMethod).Msg("wallet charge failed")

			return res, fmt.Errorf("wallet charge failed: %w", err)
		}

		status = constant.BookingStatusConfirmed
		paymentStatus = charge.Status
		chargeReference = charge.Reference
	}

	booking := req.ToModel(model.NewBookingID(), userID, guestName, checkIn, checkOut, quote.Total, status, paymentStatus)

	if err = s.repo.Insert(ctx, booking); err != nil {
		// The 5-char reservation code can collide; one retry with a fresh code.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			booking.ID = model.NewBookingID()
			err = s.repo.Insert(ctx, booking)
		}

		if err != nil {
			if chargeReference != constant.Empty {
				// The wallet already settled; leave a trace so the charge can
				// be reconciled manually.
				log.Error().
					Str("reference", chargeReference).
					Str("userID", userID).
					Int64("amount", quote.Total).
					Msg("booking insert failed after wallet charge settled")
			}

			return res, err
		}
	}

	s.publishEvent(ctx, dto.EventTypeBookingCreated, booking)
	s.invalidateListCaches(ctx)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if err := s.requireOwnershipForGuests(ctx, model.Booking{UserID: res.UserID}); err != nil {
			return dto.BookingResponse{}, err
		}

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	// Guests may only read their own reservations; staff see everything.
	if err = s.requireOwnershipForGuests(ctx, booking); err != nil {
		return dto.BookingResponse{}, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, roomID, checkIn, checkOut string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	in, out, err := parseDateRange(checkIn, checkOut)
	if err != nil {
		return res, err
	}

	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return res, err
	}

	res = dto.QuoteResponse{
		RoomID:   room.ID,
		CheckIn:  in.Format(constant.DateOnlyFormat),
		CheckOut: out.Format(constant.DateOnlyFormat),
		Quote:    pricing.NewQuote(in, out, room.PricePerNight),
	}

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, constant.BookingStatusConfirmed, []string{constant.BookingStatusPending}, nil)
}

func (s *serviceImpl) Reject(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, constant.BookingStatusRejected, []string{constant.BookingStatusPending}, nil)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	allowed := []string{constant.BookingStatusPending, constant.BookingStatusConfirmed}

	return s.transition(ctx, id, constant.BookingStatusCancelled, allowed, s.requireOwnershipForGuests)
}

func (s *serviceImpl) Checkout(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, constant.BookingStatusCompleted, []string{constant.BookingStatusConfirmed}, nil)
}

func (s *serviceImpl) EditDates(ctx context.Context, req dto.EditBookingDatesRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EditDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = s.requireOwnershipForGuests(ctx, booking); err != nil {
		return err
	}

	if booking.IsTerminal() {
		return failure.Conflict(fmt.Sprintf("booking is %s and can no longer be modified", booking.Status)) // nolint:wrapcheck
	}

	if timezone.Now().Add(constant.EditCutoffHours * time.Hour).After(booking.CheckIn) {
		return failure.Conflict("bookings can only be edited up to 24 hours before check-in") // nolint:wrapcheck
	}

	checkIn, checkOut, err := parseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return err
	}

	// Pricing always uses the room's current rate; a deleted room aborts the edit.
	room, err := s.getRoom(ctx, booking.RoomID)
	if err != nil {
		return err
	}

	available, err := s.availability.IsRoomAvailable(ctx, room, checkIn, checkOut, booking.ID)
	if err != nil {
		return err
	}

	if !available {
		return failure.Conflict("room is not available for the new dates") // nolint:wrapcheck
	}

	quote := pricing.NewQuote(checkIn, checkOut, room.PricePerNight)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updated := map[string]any{
		model.FieldCheckIn:       checkIn,
		model.FieldCheckOut:      checkOut,
		model.FieldTotalPrice:    quote.Total,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking dates")

		return fmt.Errorf("failed to update booking dates: %w", err)
	}

	booking.CheckIn = checkIn
	booking.CheckOut = checkOut
	booking.TotalPrice = quote.Total

	s.publishEvent(ctx, dto.EventTypeBookingUpdated, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

// transition moves a booking to the next status, enforcing that terminal
// statuses admit no further transitions and that the current status is in the
// allowed set. guard, when non-nil, runs before any state change.
func (s *serviceImpl) transition(ctx context.Context, id, next string, allowedFrom []string, guard func(context.Context, model.Booking) error) error {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if guard != nil {
		if err = guard(ctx, booking); err != nil {
			return err
		}
	}

	if booking.IsTerminal() {
		return failure.Conflict(fmt.Sprintf("booking is already %s", booking.Status)) // nolint:wrapcheck
	}

	allowed := false
	for _, status := range allowedFrom {
		if booking.Status == status {
			allowed = true

			break
		}
	}

	if !allowed {
		return failure.Conflict(fmt.Sprintf("cannot move a %s booking to %s", booking.Status, next)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updated := map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	// Completing a stay settles any pay-on-arrival balance.
	if next == constant.BookingStatusCompleted {
		updated[model.FieldPaymentStatus] = constant.PaymentStatusPaid
	}

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = next
	if next == constant.BookingStatusCompleted {
		booking.PaymentStatus = constant.PaymentStatusPaid
	}

	s.publishEvent(ctx, dto.EventTypeBookingStatusChanged, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) requireOwnershipForGuests(ctx context.Context, booking model.Booking) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleGuest {
		return nil
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if booking.UserID != userID {
		return failure.Forbidden("booking belongs to another guest") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) getRoom(ctx context.Context, id string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("roomID", id).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := dto.BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		BookingID:     booking.ID,
		RoomID:        booking.RoomID,
		UserID:        booking.UserID,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		OccurredAt:    timezone.Format(timezone.Now(), constant.DateFormat),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, kafka.Message{Key: booking.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func parseDateRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("invalid check-in date") // nolint:wrapcheck
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("invalid check-out date") // nolint:wrapcheck
	}

	if !out.After(in) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check-out must be after check-in") // nolint:wrapcheck
	}

	return in, out, nil
}

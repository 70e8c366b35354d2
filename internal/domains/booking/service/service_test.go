package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"merobooking/config"
	"merobooking/infras/otel/mocks"
	availabilityMocks "merobooking/internal/domains/availability/mocks"
	bookingMocks "merobooking/internal/domains/booking/mocks"
	"merobooking/internal/domains/booking/model"
	"merobooking/internal/domains/booking/model/dto"
	"merobooking/internal/domains/booking/service"
	"merobooking/internal/domains/payment"
	paymentMocks "merobooking/internal/domains/payment/mocks"
	roomModel "merobooking/internal/domains/room/model"
	roomMocks "merobooking/internal/domains/room/mocks"
	"merobooking/shared/cache"
	"merobooking/shared/constant"
	gModel "merobooking/shared/model"
	"merobooking/shared/timezone"
)

// noopCache always misses and swallows writes, so cache-aside code paths and
// the async invalidation goroutines never interfere with mock expectations.
type noopCache struct{}

func (noopCache) Save(context.Context, string, any, int) error { return nil }
func (noopCache) Get(context.Context, string, any) error       { return cache.Nil }
func (noopCache) Delete(context.Context, string) error         { return nil }
func (noopCache) Clear(context.Context, string) error          { return nil }

func authedContext(userID, name, role string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserName, name)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return ctx
}

func testRoom() roomModel.Room {
	return roomModel.Room{
		ID:            "101",
		Name:          "Royal Penthouse Suite",
		PricePerNight: 350000,
		Capacity:      4,
		TotalStock:    2,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

func futureDate(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.DateOnlyFormat)
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)
	mockGateway := paymentMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockRoomRepo, mockAvailability, mockGateway, nil, cfg, noopCache{}, mockOtel)

	ctx := authedContext("guest_janedoe", "jane", constant.RoleGuest)

	t.Run("cash booking stays pending", func(t *testing.T) {
		var inserted model.Booking

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(true, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				inserted = booking

				return nil
			})

		res, err := svc.Create(ctx, dto.CreateBookingRequest{
			RoomID:        "101",
			CheckIn:       futureDate(10),
			CheckOut:      futureDate(13),
			PaymentMethod: constant.PaymentMethodCash,
		})

		require.NoError(t, err)
		assert.Equal(t, constant.BookingStatusPending, inserted.Status)
		assert.Equal(t, constant.PaymentStatusPending, inserted.PaymentStatus)
		assert.Equal(t, "guest_janedoe", inserted.UserID)
		assert.EqualValues(t, 1186500, inserted.TotalPrice) // 3 nights + 13% tax
		assert.Regexp(t, regexp.MustCompile(`^BK-[0-9A-Z]{5}$`), inserted.ID)
		assert.Equal(t, inserted.ID, res.ID)
	})

	t.Run("wallet booking is confirmed immediately", func(t *testing.T) {
		var inserted model.Booking

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(true, nil)

		mockGateway.EXPECT().
			Charge(gomock.Any(), constant.PaymentMethodEsewa, int64(1186500), "guest_janedoe", "").
			Return(payment.ChargeResult{Reference: "ref-1", Status: constant.PaymentStatusPaid}, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				inserted = booking

				return nil
			})

		_, err := svc.Create(ctx, dto.CreateBookingRequest{
			RoomID:        "101",
			CheckIn:       futureDate(10),
			CheckOut:      futureDate(13),
			PaymentMethod: constant.PaymentMethodEsewa,
		})

		require.NoError(t, err)
		assert.Equal(t, constant.BookingStatusConfirmed, inserted.Status)
		assert.Equal(t, constant.PaymentStatusPaid, inserted.PaymentStatus)
	})

	t.Run("unavailable room is a conflict", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(false, nil)

		_, err := svc.Create(ctx, dto.CreateBookingRequest{
			RoomID:        "101",
			CheckIn:       futureDate(10),
			CheckOut:      futureDate(13),
			PaymentMethod: constant.PaymentMethodCash,
		})

		assert.Error(t, err)
	})

	t.Run("check-out before check-in is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateBookingRequest{
			RoomID:        "101",
			CheckIn:       futureDate(13),
			CheckOut:      futureDate(10),
			PaymentMethod: constant.PaymentMethodCash,
		})

		assert.Error(t, err)
	})

	t.Run("missing room aborts the booking", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := svc.Create(ctx, dto.CreateBookingRequest{
			RoomID:        "missing",
			CheckIn:       futureDate(10),
			CheckOut:      futureDate(13),
			PaymentMethod: constant.PaymentMethodCash,
		})

		assert.Error(t, err)
	})

	t.Run("reservation code collision retries once with a fresh code", func(t *testing.T) {
		ids := make([]string, 0, 2)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(true, nil)

		collision := &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)}

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				ids = append(ids, booking.ID)

				return collision
			})

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				ids = append(ids, booking.ID)

				return nil
			})

		_, err := svc.Create(ctx, dto.CreateBookingRequest{
			RoomID:        "101",
			CheckIn:       futureDate(10),
			CheckOut:      futureDate(13),
			PaymentMethod: constant.PaymentMethodCash,
		})

		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])
	})

	t.Run("insert failure after a settled wallet charge surfaces without recharging", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(true, nil)

		mockGateway.EXPECT().
			Charge(gomock.Any(), constant.PaymentMethodKhalti, int64(1186500), "guest_janedoe", "").
			Times(1).
			Return(payment.ChargeResult{Reference: "ref-orphan", Status: constant.PaymentStatusPaid}, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		_, err := svc.Create(ctx, dto.CreateBookingRequest{
			RoomID:        "101",
			CheckIn:       futureDate(10),
			CheckOut:      futureDate(13),
			PaymentMethod: constant.PaymentMethodKhalti,
		})

		assert.Error(t, err)
	})
}

func TestBookingService_Transitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)
	mockGateway := paymentMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockRoomRepo, mockAvailability, mockGateway, nil, cfg, noopCache{}, mockOtel)

	adminCtx := authedContext("admin1", "Administrator", constant.RoleAdmin)

	booking := func(status string) model.Booking {
		return model.Booking{
			ID:            "BK-AAAAA",
			RoomID:        "101",
			UserID:        "guest_janedoe",
			CheckIn:       timezone.Now().AddDate(0, 0, 10),
			CheckOut:      timezone.Now().AddDate(0, 0, 13),
			TotalPrice:    1186500,
			Status:        status,
			PaymentMethod: constant.PaymentMethodCash,
			PaymentStatus: constant.PaymentStatusPending,
		}
	}

	t.Run("approve moves pending to confirmed", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(constant.BookingStatusPending), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, constant.BookingStatusConfirmed, req[model.FieldStatus])

				return nil
			})

		assert.NoError(t, svc.Approve(adminCtx, "BK-AAAAA"))
	})

	t.Run("approve rejects a confirmed booking", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(constant.BookingStatusConfirmed), nil)

		assert.Error(t, svc.Approve(adminCtx, "BK-AAAAA"))
	})

	t.Run("terminal statuses admit no transitions", func(t *testing.T) {
		for _, status := range []string{
			constant.BookingStatusCompleted,
			constant.BookingStatusCancelled,
			constant.BookingStatusRejected,
		} {
			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(booking(status), nil)

			assert.Error(t, svc.Cancel(adminCtx, "BK-AAAAA"), "status %s", status)
		}
	})

	t.Run("checkout settles payment", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(constant.BookingStatusConfirmed), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, constant.BookingStatusCompleted, req[model.FieldStatus])
				assert.Equal(t, constant.PaymentStatusPaid, req[model.FieldPaymentStatus])

				return nil
			})

		assert.NoError(t, svc.Checkout(adminCtx, "BK-AAAAA"))
	})

	t.Run("guests cannot cancel someone else's booking", func(t *testing.T) {
		otherGuest := authedContext("guest_other", "other", constant.RoleGuest)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(constant.BookingStatusPending), nil)

		assert.Error(t, svc.Cancel(otherGuest, "BK-AAAAA"))
	})

	t.Run("owner can cancel a confirmed booking", func(t *testing.T) {
		ownerCtx := authedContext("guest_janedoe", "jane", constant.RoleGuest)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(constant.BookingStatusConfirmed), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Cancel(ownerCtx, "BK-AAAAA"))
	})
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)
	mockGateway := paymentMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockRoomRepo, mockAvailability, mockGateway, nil, cfg, noopCache{}, mockOtel)

	stored := model.Booking{
		ID:            "BK-AAAAA",
		RoomID:        "101",
		UserID:        "guest_janedoe",
		CheckIn:       timezone.Now().AddDate(0, 0, 10),
		CheckOut:      timezone.Now().AddDate(0, 0, 13),
		TotalPrice:    1186500,
		Status:        constant.BookingStatusPending,
		PaymentMethod: constant.PaymentMethodCash,
		PaymentStatus: constant.PaymentStatusPending,
	}

	t.Run("staff can read any booking", func(t *testing.T) {
		adminCtx := authedContext("admin1", "Administrator", constant.RoleAdmin)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		res, err := svc.Get(adminCtx, "BK-AAAAA")

		require.NoError(t, err)
		assert.Equal(t, "BK-AAAAA", res.ID)
		assert.Equal(t, "guest_janedoe", res.UserID)
	})

	t.Run("owner can read their booking", func(t *testing.T) {
		ownerCtx := authedContext("guest_janedoe", "jane", constant.RoleGuest)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		res, err := svc.Get(ownerCtx, "BK-AAAAA")

		require.NoError(t, err)
		assert.Equal(t, "BK-AAAAA", res.ID)
	})

	t.Run("guests cannot read someone else's booking", func(t *testing.T) {
		otherGuest := authedContext("guest_other", "other", constant.RoleGuest)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		res, err := svc.Get(otherGuest, "BK-AAAAA")

		assert.Error(t, err)
		assert.Empty(t, res.ID)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		adminCtx := authedContext("admin1", "Administrator", constant.RoleAdmin)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(adminCtx, "BK-ZZZZZ")

		assert.Error(t, err)
	})
}

func TestBookingService_EditDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)
	mockGateway := paymentMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockRoomRepo, mockAvailability, mockGateway, nil, cfg, noopCache{}, mockOtel)

	ownerCtx := authedContext("guest_janedoe", "jane", constant.RoleGuest)

	booking := func(checkInDays int, status string) model.Booking {
		return model.Booking{
			ID:         "BK-AAAAA",
			RoomID:     "101",
			UserID:     "guest_janedoe",
			CheckIn:    timezone.Now().AddDate(0, 0, checkInDays),
			CheckOut:   timezone.Now().AddDate(0, 0, checkInDays+3),
			TotalPrice: 1186500,
			Status:     status,
		}
	}

	t.Run("moves dates and reprices", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(10, constant.BookingStatusConfirmed), nil)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "BK-AAAAA").
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				// 2 nights at 350000 plus 13% tax
				assert.EqualValues(t, 791000, req[model.FieldTotalPrice])

				return nil
			})

		err := svc.EditDates(ownerCtx, dto.EditBookingDatesRequest{
			CheckIn:  futureDate(20),
			CheckOut: futureDate(22),
		}, "BK-AAAAA")

		assert.NoError(t, err)
	})

	t.Run("cutoff blocks edits within 24 hours of check-in", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(0, constant.BookingStatusConfirmed), nil)

		err := svc.EditDates(ownerCtx, dto.EditBookingDatesRequest{
			CheckIn:  futureDate(20),
			CheckOut: futureDate(22),
		}, "BK-AAAAA")

		assert.Error(t, err)
	})

	t.Run("terminal bookings cannot be edited", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(10, constant.BookingStatusCancelled), nil)

		err := svc.EditDates(ownerCtx, dto.EditBookingDatesRequest{
			CheckIn:  futureDate(20),
			CheckOut: futureDate(22),
		}, "BK-AAAAA")

		assert.Error(t, err)
	})

	t.Run("new dates must be available", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking(10, constant.BookingStatusConfirmed), nil)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)

		mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "BK-AAAAA").
			Return(false, nil)

		err := svc.EditDates(ownerCtx, dto.EditBookingDatesRequest{
			CheckIn:  futureDate(20),
			CheckOut: futureDate(22),
		}, "BK-AAAAA")

		assert.Error(t, err)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, errors.New("connection reset"))

		err := svc.EditDates(ownerCtx, dto.EditBookingDatesRequest{
			CheckIn:  futureDate(20),
			CheckOut: futureDate(22),
		}, "BK-AAAAA")

		assert.Error(t, err)
	})
}

func TestBookingService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)
	mockGateway := paymentMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockRoomRepo, mockAvailability, mockGateway, nil, cfg, noopCache{}, mockOtel)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testRoom(), nil)

	res, err := svc.Quote(context.Background(), "101", futureDate(10), futureDate(13))

	require.NoError(t, err)
	assert.Equal(t, 3, res.Nights)
	assert.EqualValues(t, 1050000, res.Base)
	assert.EqualValues(t, 136500, res.Tax)
	assert.EqualValues(t, 1186500, res.Total)
}

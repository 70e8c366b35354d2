package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"merobooking/config"
	"merobooking/infras/otel/mocks"
	bookingMocks "merobooking/internal/domains/booking/mocks"
	bookingModel "merobooking/internal/domains/booking/model"
	reviewMocks "merobooking/internal/domains/review/mocks"
	"merobooking/internal/domains/review/model"
	"merobooking/internal/domains/review/model/dto"
	"merobooking/internal/domains/review/service"
	"merobooking/shared/cache"
	"merobooking/shared/constant"
	"merobooking/shared/timezone"
)

type noopCache struct{}

func (noopCache) Save(context.Context, string, any, int) error { return nil }
func (noopCache) Get(context.Context, string, any) error       { return cache.Nil }
func (noopCache) Delete(context.Context, string) error         { return nil }
func (noopCache) Clear(context.Context, string) error          { return nil }

func guestContext(userID, name string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserName, name)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)

	return ctx
}

func completedBooking(checkedOutDaysAgo int) bookingModel.Booking {
	now := timezone.Now()

	return bookingModel.Booking{
		ID:       "BK-AAAAA",
		RoomID:   "101",
		UserID:   "guest_janedoe",
		CheckIn:  now.AddDate(0, 0, -checkedOutDaysAgo-3),
		CheckOut: now.AddDate(0, 0, -checkedOutDaysAgo),
		Status:   constant.BookingStatusCompleted,
	}
}

func TestReviewService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockBookingRepo, cfg, noopCache{}, mockOtel)

	ownerCtx := guestContext("guest_janedoe", "jane")

	req := dto.SaveReviewRequest{
		BookingID: "BK-AAAAA",
		Rating:    5,
		Comment:   "Wonderful stay",
	}

	t.Run("first review is inserted", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completedBooking(2), nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{}, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, review model.Review) error {
				assert.Equal(t, "BK-AAAAA", review.BookingID)
				assert.Equal(t, "101", review.RoomID)
				assert.Equal(t, "guest_janedoe", review.UserID)
				assert.Equal(t, 5, review.Rating)

				return nil
			})

		assert.NoError(t, svc.Save(ownerCtx, req))
	})

	t.Run("existing review is updated in place", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completedBooking(2), nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{ID: "rev-1", BookingID: "BK-AAAAA"}, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ any) error {
				assert.Equal(t, 5, updated[model.FieldRating])
				assert.Equal(t, "Wonderful stay", updated[model.FieldComment])

				return nil
			})

		assert.NoError(t, svc.Save(ownerCtx, req))
	})

	t.Run("only completed stays can be reviewed", func(t *testing.T) {
		booking := completedBooking(2)
		booking.Status = constant.BookingStatusConfirmed

		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		assert.Error(t, svc.Save(ownerCtx, req))
	})

	t.Run("window closes after seven days", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completedBooking(8), nil)

		assert.Error(t, svc.Save(ownerCtx, req))
	})

	t.Run("day seven is still inside the window", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completedBooking(7), nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{}, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Save(ownerCtx, req))
	})

	t.Run("someone else's booking is forbidden", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completedBooking(2), nil)

		assert.Error(t, svc.Save(guestContext("guest_other", "other"), req))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{}, nil)

		assert.Error(t, svc.Save(ownerCtx, req))
	})
}

func TestReviewService_GetByBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockBookingRepo, cfg, noopCache{}, mockOtel)

	t.Run("returns the review for a booking", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{ID: "rev-1", BookingID: "BK-AAAAA", Rating: 4}, nil)

		res, err := svc.GetByBooking(context.Background(), "BK-AAAAA")

		require.NoError(t, err)
		assert.Equal(t, "rev-1", res.ID)
		assert.Equal(t, 4, res.Rating)
	})

	t.Run("missing review is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{}, nil)

		_, err := svc.GetByBooking(context.Background(), "BK-AAAAA")

		assert.Error(t, err)
	})
}

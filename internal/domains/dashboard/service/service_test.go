package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"merobooking/infras/otel/mocks"
	bookingMocks "merobooking/internal/domains/booking/mocks"
	"merobooking/internal/domains/dashboard/service"
	roomModel "merobooking/internal/domains/room/model"
	roomMocks "merobooking/internal/domains/room/mocks"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookingRepo, mockRoomRepo, mockOtel)

	t.Run("aggregates the counters", func(t *testing.T) {
		// new bookings, upcoming check-ins, occupied, checking out today
		gomock.InOrder(
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil),
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(5, nil),
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(7, nil),
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil),
		)

		mockRoomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{
				{ID: "101", TotalStock: 2},
				{ID: "102", TotalStock: 4},
				{ID: "103", TotalStock: 5},
			}, nil)

		res, err := svc.GetStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, res.NewBookings)
		assert.Equal(t, 5, res.UpcomingCheckIns)
		assert.Equal(t, 7, res.OccupiedRooms)
		assert.Equal(t, 2, res.CheckingOutToday)
		assert.Equal(t, 4, res.AvailableRooms) // 11 total units minus 7 occupied
	})

	t.Run("available rooms never go negative", func(t *testing.T) {
		gomock.InOrder(
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil),
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil),
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(9, nil),
			mockBookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil),
		)

		mockRoomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{{ID: "101", TotalStock: 2}}, nil)

		res, err := svc.GetStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, res.AvailableRooms)
	})

	t.Run("counter failure surfaces", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("connection reset"))

		_, err := svc.GetStats(context.Background())

		assert.Error(t, err)
	})
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"merobooking/config"
	"merobooking/infras/otel/mocks"
	facilityMocks "merobooking/internal/domains/facility/mocks"
	"merobooking/internal/domains/facility/model"
	"merobooking/internal/domains/facility/model/dto"
	"merobooking/internal/domains/facility/service"
	"merobooking/shared/cache"
)

type noopCache struct{}

func (noopCache) Save(context.Context, string, any, int) error { return nil }
func (noopCache) Get(context.Context, string, any) error       { return cache.Nil }
func (noopCache) Delete(context.Context, string) error         { return nil }
func (noopCache) Clear(context.Context, string) error          { return nil }

func TestFacilityService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := facilityMocks.NewMockFacility(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, noopCache{}, mockOtel)

	t.Run("known icon is kept", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, facility model.Facility) error {
				assert.Equal(t, model.IconWifi, facility.Icon)

				return nil
			})

		err := svc.Create(context.Background(), dto.CreateFacilityRequest{
			Name: "High-Speed Wi-Fi",
			Icon: "Wifi",
		})

		assert.NoError(t, err)
	})

	t.Run("unknown icon falls back to the default", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, facility model.Facility) error {
				assert.Equal(t, model.DefaultIcon, facility.Icon)

				return nil
			})

		err := svc.Create(context.Background(), dto.CreateFacilityRequest{
			Name: "Helipad",
			Icon: "Helicopter",
		})

		assert.NoError(t, err)
	})

	t.Run("empty icon falls back to the default", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, facility model.Facility) error {
				assert.Equal(t, model.DefaultIcon, facility.Icon)

				return nil
			})

		err := svc.Create(context.Background(), dto.CreateFacilityRequest{
			Name: "Business Lounge",
		})

		assert.NoError(t, err)
	})
}

func TestFacilityService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := facilityMocks.NewMockFacility(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, noopCache{}, mockOtel)

	t.Run("returns the facility", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Facility{ID: "fac-1", Name: "Infinity Pool", Icon: model.IconWaves}, nil)

		res, err := svc.Get(context.Background(), "fac-1")

		require.NoError(t, err)
		assert.Equal(t, "Infinity Pool", res.Name)
	})

	t.Run("missing facility is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Facility{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestFacilityService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := facilityMocks.NewMockFacility(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, noopCache{}, mockOtel)

	t.Run("normalizes the icon before writing", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ any) error {
				assert.Equal(t, model.DefaultIcon, updated[model.FieldIcon])

				return nil
			})

		err := svc.Update(context.Background(), dto.UpdateFacilityRequest{Icon: "Sparkles"}, "fac-1")

		assert.NoError(t, err)
	})

	t.Run("missing facility is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateFacilityRequest{Name: "Spa"}, "missing")

		assert.Error(t, err)
	})
}

func TestFacilityService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := facilityMocks.NewMockFacility(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, noopCache{}, mockOtel)

	t.Run("deletes an existing facility", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "fac-1"))
	})

	t.Run("missing facility is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		assert.Error(t, svc.Delete(context.Background(), "missing"))
	})
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"merobooking/infras/otel/mocks"
	userMocks "merobooking/internal/domains/user/mocks"
	"merobooking/internal/domains/user/model"
	"merobooking/internal/domains/user/model/dto"
	"merobooking/internal/domains/user/service"
	"merobooking/shared/constant"
)

func actorContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func TestUserService_ChangeRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockOtel)

	t.Run("promotes an account", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ any) error {
				assert.Equal(t, constant.RoleAdmin, updated[model.FieldRole])
				assert.Equal(t, "super_admin1", updated[constant.FieldModifiedBy])

				return nil
			})

		err := svc.ChangeRole(actorContext("super_admin1"), dto.ChangeRoleRequest{Role: constant.RoleAdmin}, "user-1")

		assert.NoError(t, err)
	})

	t.Run("self demotion is rejected", func(t *testing.T) {
		err := svc.ChangeRole(actorContext("super_admin1"), dto.ChangeRoleRequest{Role: constant.RoleAdmin}, "super_admin1")

		assert.Error(t, err)
	})

	t.Run("reaffirming your own role is allowed", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.ChangeRole(actorContext("super_admin1"), dto.ChangeRoleRequest{Role: constant.RoleSuperAdmin}, "super_admin1")

		assert.NoError(t, err)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.ChangeRole(actorContext("super_admin1"), dto.ChangeRoleRequest{Role: constant.RoleAdmin}, "missing")

		assert.Error(t, err)
	})
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockOtel)

	t.Run("returns the user without the password", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "admin1", Name: "Administrator", Role: constant.RoleAdmin, Password: "secret-hash"}, nil)

		res, err := svc.Get(context.Background(), "admin1")

		require.NoError(t, err)
		assert.Equal(t, "admin1", res.ID)
		assert.Equal(t, constant.RoleAdmin, res.Role)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"merobooking/config"
	"merobooking/infras/jwt"
	jwtMocks "merobooking/infras/jwt/mocks"
	"merobooking/infras/otel/mocks"
	"merobooking/internal/domains/auth/model/dto"
	"merobooking/internal/domains/auth/service"
	userMocks "merobooking/internal/domains/user/mocks"
	userModel "merobooking/internal/domains/user/model"
	"merobooking/shared/constant"
	"merobooking/shared/password"
)

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	t.Run("first guest login provisions the account", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, userModel.GuestID("jane.doe@example.com"), user.ID)
				assert.Equal(t, "jane.doe", user.Name)
				assert.Equal(t, constant.RoleGuest, user.Role)

				return nil
			})

		mockJWT.EXPECT().
			GenerateTokenPair(userModel.GuestID("jane.doe@example.com"), "jane.doe@example.com", "jane.doe", constant.RoleGuest).
			Return(tokenPair(), nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "jane.doe@example.com",
			Role:  constant.RoleGuest,
		})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, constant.RoleGuest, res.User.Role)
	})

	t.Run("returning guest reuses the existing account", func(t *testing.T) {
		existing := userModel.User{
			ID:    userModel.GuestID("jane.doe@example.com"),
			Name:  "jane.doe",
			Email: "jane.doe@example.com",
			Role:  constant.RoleGuest,
		}

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockJWT.EXPECT().
			GenerateTokenPair(existing.ID, existing.Email, existing.Name, existing.Role).
			Return(tokenPair(), nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "jane.doe@example.com",
			Role:  constant.RoleGuest,
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID, res.User.ID)
	})

	t.Run("guest login against a staff email is rejected", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "admin1", Role: constant.RoleAdmin}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "admin@merobooking.com",
			Role:  constant.RoleGuest,
		})

		assert.Error(t, err)
	})

	t.Run("staff login verifies the password", func(t *testing.T) {
		hash, err := password.Hash("admin123")
		require.NoError(t, err)

		staff := userModel.User{
			ID:       "admin1",
			Name:     "Administrator",
			Email:    "admin@merobooking.com",
			Role:     constant.RoleAdmin,
			Password: hash,
		}

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(staff, nil)

		mockJWT.EXPECT().
			GenerateTokenPair(staff.ID, staff.Email, staff.Name, staff.Role).
			Return(tokenPair(), nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@merobooking.com",
			Role:     constant.RoleAdmin,
			Password: "admin123",
		})

		require.NoError(t, err)
		assert.Equal(t, "admin1", res.User.ID)
	})

	t.Run("staff login with a wrong password fails", func(t *testing.T) {
		hash, err := password.Hash("admin123")
		require.NoError(t, err)

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "admin1", Role: constant.RoleAdmin, Password: hash}, nil)

		_, err = svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@merobooking.com",
			Role:     constant.RoleAdmin,
			Password: "not-the-password",
		})

		assert.Error(t, err)
	})

	t.Run("staff role must match the stored account", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "admin1", Role: constant.RoleAdmin}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@merobooking.com",
			Role:     constant.RoleSuperAdmin,
			Password: "admin123",
		})

		assert.Error(t, err)
	})

	t.Run("unknown staff account fails", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@merobooking.com",
			Role:     constant.RoleAdmin,
			Password: "admin123",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	t.Run("guest registers without a password", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, userModel.GuestID("jane.doe@example.com"), user.ID)
				assert.Empty(t, user.Password)

				return nil
			})

		err := svc.Register(context.Background(), dto.RegisterRequest{
			Name:  "Jane Doe",
			Email: "jane.doe@example.com",
			Role:  constant.RoleGuest,
		})

		assert.NoError(t, err)
	})

	superAdminCtx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleSuperAdmin)

	t.Run("anonymous caller cannot register a staff account", func(t *testing.T) {
		err := svc.Register(context.Background(), dto.RegisterRequest{
			Name:     "New Admin",
			Email:    "new.admin@merobooking.com",
			Role:     constant.RoleAdmin,
			Password: "sup3r-secret",
		})

		assert.Error(t, err)
	})

	t.Run("admin caller cannot register a super admin", func(t *testing.T) {
		adminCtx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)

		err := svc.Register(adminCtx, dto.RegisterRequest{
			Name:     "Rogue Admin",
			Email:    "rogue@merobooking.com",
			Role:     constant.RoleSuperAdmin,
			Password: "sup3r-secret",
		})

		assert.Error(t, err)
	})

	t.Run("staff registration requires a password", func(t *testing.T) {
		err := svc.Register(superAdminCtx, dto.RegisterRequest{
			Name:  "New Admin",
			Email: "new.admin@merobooking.com",
			Role:  constant.RoleAdmin,
		})

		assert.Error(t, err)
	})

	t.Run("staff registration hashes the password", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.NotEqual(t, "sup3r-secret", user.Password)
				assert.NoError(t, password.Verify("sup3r-secret", user.Password))

				return nil
			})

		err := svc.Register(superAdminCtx, dto.RegisterRequest{
			Name:     "New Admin",
			Email:    "new.admin@merobooking.com",
			Role:     constant.RoleAdmin,
			Password: "sup3r-secret",
		})

		assert.NoError(t, err)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Register(context.Background(), dto.RegisterRequest{
			Name:  "Jane Doe",
			Email: "jane.doe@example.com",
			Role:  constant.RoleGuest,
		})

		assert.Error(t, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	t.Run("issues a fresh pair", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("refresh").
			Return(tokenPair(), nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, errors.New("token is malformed"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Error(t, err)
	})
}

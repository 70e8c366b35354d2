package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"merobooking/config"
	"merobooking/infras/jwt"
	"merobooking/infras/otel"
	"merobooking/internal/domains/auth/model/dto"
	userModel "merobooking/internal/domains/user/model"
	userRepo "merobooking/internal/domains/user/repository"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
	"merobooking/shared/failure"
	gModel "merobooking/shared/model"
	"merobooking/shared/password"
	"merobooking/shared/timezone"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Role != constant.RoleGuest {
		// The public register endpoint carries no token, so its context holds
		// no role and staff self-signup is rejected here. Staff accounts come
		// from the seed data or from a super admin.
		if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role != constant.RoleSuperAdmin {
			return failure.Forbidden("staff accounts can only be created by a super admin") // nolint:wrapcheck
		}

		if req.Password == "" {
			return failure.BadRequestFromString("password is required for staff accounts")
		}
	}

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("email already registered")
	}

	hashedPassword := constant.Empty
	if req.Password != constant.Empty {
		hashedPassword, err = password.Hash(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	var user userModel.User

	if req.Role == constant.RoleGuest {
		user, err = s.loginGuest(ctx, req)
	} else {
		user, err = s.loginStaff(ctx, req)
	}

	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.User.FromModel(user)
	res.FromTokenPair(tokenPair)

	return res, nil
}

// loginGuest provisions the guest account on first sight. Guests
// authenticate by email alone and their id is derived from it, so a
// returning guest always lands on the same account.
func (s *serviceImpl) loginGuest(ctx context.Context, req dto.LoginRequest) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID != constant.Empty {
		if user.Role != constant.RoleGuest {
			return user, failure.BadRequestFromString("invalid email or password")
		}

		return user, nil
	}

	id := userModel.GuestID(req.Email)
	user = userModel.User{
		ID:    id,
		Name:  strings.SplitN(req.Email, "@", 2)[0],
		Email: req.Email,
		Role:  constant.RoleGuest,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}

	if err := s.userRepo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to provision guest account")

		return user, fmt.Errorf("failed to provision guest account: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) loginStaff(ctx context.Context, req dto.LoginRequest) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || user.Role != req.Role {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent staff account")

		return user, failure.BadRequestFromString("invalid email or password")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return user, failure.BadRequestFromString("invalid email or password")
	}

	return user, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    userModel.TableName,
			},
		},
	}
}

package dto

import (
	"github.com/google/uuid"

	"merobooking/infras/jwt"
	userModel "merobooking/internal/domains/user/model"
	userDto "merobooking/internal/domains/user/model/dto"
	"merobooking/shared/constant"
	gModel "merobooking/shared/model"
	"merobooking/shared/timezone"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required,oneof=GUEST ADMIN SUPER_ADMIN"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

func (r *RegisterRequest) ToUserModel(passwordHash string) userModel.User {
	id := userModel.GuestID(r.Email)
	if r.Role != constant.RoleGuest {
		id = "user_" + uuid.NewString()
	}

	return userModel.User{
		ID:       id,
		Name:     r.Name,
		Email:    r.Email,
		Role:     r.Role,
		Password: passwordHash,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required,oneof=GUEST ADMIN SUPER_ADMIN"`
	Password string `json:"password" validate:"omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}

type LoginResponse struct {
	User userDto.UserResponse `json:"user"`
	TokenResponse
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	TokenResponse
}

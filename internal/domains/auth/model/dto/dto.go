package dto

import (
	"roomly/infras/jwt"
	userModel "roomly/internal/domains/user/model"
	"roomly/shared/constant"
	gModel "roomly/shared/model"
	"strings"
	"time"
)

type RegisterRequest struct {
	Name     string  `json:"name"                validate:"required,min=2,max=100"`
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=6,max=72"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,min=8,max=20"`
	BirthDay *string `json:"birth_day,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender   *string `json:"gender,omitempty"    validate:"omitempty,oneof=male female other"`
	Avatar   *string `json:"avatar,omitempty"    validate:"omitempty,url"`
}

// ToUserModel always produces a user-role account.
func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	return userModel.User{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: &hashedPassword,
		Phone:    r.Phone,
		BirthDay: r.BirthDay,
		Gender:   r.Gender,
		Role:     constant.RoleUser,
		Avatar:   r.Avatar,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

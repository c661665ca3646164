package dto

import (
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
)

type SignupRequestDTO struct {
	Name         string `json:"name" validate:"required,personname" example:"Ada Obi"`
	Phone        string `json:"phone" validate:"required,ngphone" example:"08031234567"`
	Email        string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
	NIN          string `json:"nin" validate:"required,nin" example:"12345678901"`
	Password     string `json:"password" validate:"required,strongpwd" example:"Str0ng!pass"`
	ReferralCode string `json:"referral_code,omitempty" validate:"omitempty,refcode" example:"ELX1234567897"`
}

type SignupResponseDTO struct {
	Message   string        `json:"message" example:"Account created, verify your phone number"`
	User      UserDTO       `json:"user"`
	Placement *PlacementDTO `json:"placement,omitempty"`
}

type VerifyOTPRequestDTO struct {
	Phone string `json:"phone" validate:"required,ngphone" example:"08031234567"`
	OTP   string `json:"otp" validate:"required,otp" example:"123456"`
}

type PhoneRequestDTO struct {
	Phone string `json:"phone" validate:"required,ngphone" example:"08031234567"`
}

type LoginRequestDTO struct {
	Phone    string `json:"phone" validate:"required,ngphone" example:"08031234567"`
	Password string `json:"password" validate:"required" example:"Str0ng!pass"`
}

type ResetPasswordRequestDTO struct {
	Phone       string `json:"phone" validate:"required,ngphone" example:"08031234567"`
	OTP         string `json:"otp" validate:"required,otp" example:"123456"`
	NewPassword string `json:"new_password" validate:"required,strongpwd" example:"N3w!password"`
}

type UpdateProfileRequestDTO struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,personname" example:"Ada Okafor"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255" example:"ada.okafor@example.com"`
}

type TokenResponseDTO struct {
	Message string  `json:"message" example:"User successfully authenticated"`
	Token   string  `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    UserDTO `json:"user"`
}

type MessageResponseDTO struct {
	Message string `json:"message" example:"OTP sent"`
}

type UserDTO struct {
	ID             int        `json:"id" example:"42"`
	Name           string     `json:"name" example:"Ada Obi"`
	Phone          string     `json:"phone" example:"08031234567"`
	Email          string     `json:"email" example:"ada@example.com"`
	ReferralCode   string     `json:"referral_code" example:"ELX1234567897"`
	CurrentLevel   int        `json:"current_level" example:"0"`
	LevelName      string     `json:"level_name" example:"Starter"`
	Badges         []string   `json:"badges"`
	IsActivated    bool       `json:"is_activated" example:"true"`
	ActivationDate *time.Time `json:"activation_date,omitempty"`
	PhoneVerified  bool       `json:"phone_verified" example:"true"`
	CreatedAt      time.Time  `json:"created_at" example:"2026-03-01T09:00:00Z"`
}

func ToUserDTO(u *domain.User) UserDTO {
	badges := u.Badges
	if badges == nil {
		badges = []string{}
	}
	return UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Phone:          u.Phone,
		Email:          u.Email,
		ReferralCode:   u.ReferralCode,
		CurrentLevel:   u.CurrentLevel,
		LevelName:      domain.LevelName(u.CurrentLevel),
		Badges:         badges,
		IsActivated:    u.IsActivated,
		ActivationDate: u.ActivationDate,
		PhoneVerified:  u.PhoneVerified,
		CreatedAt:      u.CreatedAt,
	}
}

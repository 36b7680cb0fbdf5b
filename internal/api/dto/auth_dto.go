package dto

import "github.com/RoyceAzure/lab/kitchen/internal/service"

type RegisterRequest struct {
	Email        string  `json:"email" validate:"required,email,max=255"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
	FirstName    string  `json:"first_name" validate:"required,max=100"`
	LastName     string  `json:"last_name" validate:"required,max=100"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,max=20"`
	ReferralCode string  `json:"referral_code" validate:"omitempty,max=50"`
}

func (r RegisterRequest) Params() service.RegisterParams {
	return service.RegisterParams{
		Email:        r.Email,
		Password:     r.Password,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PhoneNumber:  r.PhoneNumber,
		ReferralCode: r.ReferralCode,
	}
}

type AdminRegisterRequest struct {
	RegisterRequest
	AdminSecret string `json:"admin_secret" validate:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ResendOTPRequest purpose 預設為 email_verification
type ResendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"omitempty,oneof=email_verification password_reset"`
}

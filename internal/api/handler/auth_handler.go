package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchen/internal/api/response"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// Register POST /auth/register
// 成功後帳號尚未驗證, 需呼叫 verify-email
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := a.authService.Register(r.Context(), req.Params())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.CreatedJSON(w, user, "registration successful, check your email for the verification code")
}

// VerifyEmail POST /auth/verify-email
func (a *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := a.authService.VerifyEmail(r.Context(), req.Email, req.Code)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "email verified")
}

// Login POST /auth/login
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := a.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

// AdminRegister POST /auth/admin/register
func (a *AuthHandler) AdminRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminRegisterRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := a.authService.AdminRegister(r.Context(), req.Params(), req.AdminSecret)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.CreatedJSON(w, result, "admin account created")
}

// AdminLogin POST /auth/admin/login
func (a *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := a.authService.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

// ResendOTP POST /auth/resend-otp
func (a *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendOTPRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	purpose := redis_repo.OTPEmailVerification
	if req.Purpose != "" {
		purpose = redis_repo.OTPPurpose(req.Purpose)
	}

	if err := a.authService.ResendOTP(r.Context(), req.Email, purpose); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "if the account exists, a new code has been sent")
}

// ForgotPassword POST /auth/forgot-password
// 不論email是否存在都回傳相同訊息
func (a *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := a.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "if the account exists, a reset code has been sent")
}

// ResetPassword POST /auth/reset-password
func (a *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := a.authService.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "password has been reset")
}

// RefreshToken POST /auth/refresh-token
func (a *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := dto.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := a.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, result, "")
}

// Logout POST /auth/logout, 需登入
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	payload, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := a.authService.Logout(r.Context(), payload.UserID); err != nil {
		response.Error(w, r, err)
		return
	}
	response.SuccessJSON(w, nil, "logged out")
}

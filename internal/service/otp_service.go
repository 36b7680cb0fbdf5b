package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/rs/zerolog/log"
)

type IOTPService interface {
	// Send 產生並寄出驗證碼
	//
	// 錯誤:
	//   - TooManyRequestsCode 429: 冷卻時間內重複請求
	//   - InternalErrorCode 500: redis或寄信失敗
	Send(ctx context.Context, purpose redis_repo.OTPPurpose, email, name string) error
	// Verify 驗證成功後驗證碼即失效
	//
	// 錯誤:
	//   - ValidationCode 460: 驗證碼錯誤, 過期或嘗試次數過多
	Verify(ctx context.Context, purpose redis_repo.OTPPurpose, email, code string) error
}

type OTPService struct {
	otpRepo     redis_repo.IOTPRepository
	mailService IMailService
}

func NewOTPService(otpRepo redis_repo.IOTPRepository, mailService IMailService) *OTPService {
	if isNil(otpRepo) {
		panic("NewOTPService: otpRepo cannot be nil")
	}
	if isNil(mailService) {
		panic("NewOTPService: mailService cannot be nil")
	}
	return &OTPService{otpRepo: otpRepo, mailService: mailService}
}

var _ IOTPService = (*OTPService)(nil)

var purposeActions = map[redis_repo.OTPPurpose]string{
	redis_repo.OTPEmailVerification: "verify your email",
	redis_repo.OTPPasswordReset:     "reset your password",
}

func (s *OTPService) Send(ctx context.Context, purpose redis_repo.OTPPurpose, email, name string) error {
	ok, err := s.otpRepo.AcquireCooldown(ctx, purpose, email, constants.OTPResendCooldown)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.New(apperr.TooManyRequestsCode, "please wait before requesting another code")
	}

	code, err := util.GenerateOTP(constants.OTPLength)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.otpRepo.SaveOTP(ctx, purpose, email, util.HashToken(code), constants.OTPExpiry); err != nil {
		return apperr.Internal(err)
	}

	err = s.mailService.SendOTPEmail(ctx, OTPEmailData{
		Email:         email,
		Name:          name,
		Code:          code,
		Action:        purposeActions[purpose],
		ExpiryMinutes: int(constants.OTPExpiry.Minutes()),
	})
	if err != nil {
		log.Error().Err(err).Str("email", email).Str("purpose", string(purpose)).Msg("send otp email failed")
		return apperr.Wrap(apperr.InternalErrorCode, "failed to send verification code", err)
	}
	return nil
}

func (s *OTPService) Verify(ctx context.Context, purpose redis_repo.OTPPurpose, email, code string) error {
	invalid := apperr.New(apperr.ValidationCode, "invalid or expired code")

	record, err := s.otpRepo.GetOTP(ctx, purpose, email)
	if errors.Is(err, redis_repo.ErrOTPNotFound) {
		return invalid
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if record.Attempts >= constants.OTPMaxAttempts {
		_ = s.otpRepo.DeleteOTP(ctx, purpose, email)
		return apperr.New(apperr.ValidationCode, "too many attempts, request a new code")
	}

	if subtle.ConstantTimeCompare([]byte(record.CodeHash), []byte(util.HashToken(code))) != 1 {
		attempts, err := s.otpRepo.IncrAttempts(ctx, purpose, email)
		if err != nil {
			return apperr.Internal(err)
		}
		if attempts >= constants.OTPMaxAttempts {
			_ = s.otpRepo.DeleteOTP(ctx, purpose, email)
		}
		return invalid
	}

	if err := s.otpRepo.DeleteOTP(ctx, purpose, email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("delete used otp failed")
	}
	return nil
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/token"
	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type IAuthService interface {
	// Register 建立未驗證帳號並寄出email驗證碼
	//
	// 錯誤:
	//   - ConflictCode 409: email已被驗證過的帳號使用
	//   - ValidationCode 460: 密碼強度不足, 或24小時內已註冊但尚未驗證
	//   - InvalidPromoCode 463: 推薦碼不存在
	//   - PromoExhaustedCode 464: 推薦碼已達使用上限
	Register(ctx context.Context, arg RegisterParams) (*model.User, error)
	// VerifyEmail 驗證成功後直接登入
	//
	// 錯誤:
	//   - ValidationCode 460: 驗證碼錯誤或email已驗證
	VerifyEmail(ctx context.Context, email, code string) (*AuthResult, error)
	// Login
	//
	// 錯誤:
	//   - UnauthenticatedCode 401: 帳號或密碼錯誤
	//   - ValidationCode 460: email尚未驗證
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// AdminRegister adminSecret 需與設定檔相同
	//
	// 錯誤:
	//   - ForbiddenCode 403: admin secret 錯誤
	//   - ConflictCode 409: email已存在
	AdminRegister(ctx context.Context, arg RegisterParams, adminSecret string) (*AuthResult, error)
	// AdminLogin
	//
	// 錯誤:
	//   - UnauthenticatedCode 401: 帳號或密碼錯誤
	//   - ForbiddenCode 403: 非管理者
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string, purpose redis_repo.OTPPurpose) error
	// ForgotPassword 不論帳號是否存在都不回傳錯誤
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	// RefreshToken 驗證後輪替 access/refresh token
	//
	// 錯誤:
	//   - UnauthenticatedCode 401: token 無效, 過期或已被撤銷
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type RegisterParams struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	PhoneNumber  *string
	ReferralCode string
}

type AuthResult struct {
	User                  *model.User `json:"user"`
	AccessToken           string      `json:"access_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshToken          string      `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
}

type AuthConfig struct {
	AdminSecret      string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	ReferralDiscount decimal.Decimal
}

type AuthService struct {
	store       db.UnifiedDB
	tokenMaker  token.Maker
	refreshRepo redis_repo.IRefreshTokenRepository
	otpService  IOTPService
	mailService IMailService
	cfg         AuthConfig
	now         clock
}

func NewAuthService(store db.UnifiedDB, tokenMaker token.Maker, refreshRepo redis_repo.IRefreshTokenRepository, otpService IOTPService, mailService IMailService, cfg AuthConfig) *AuthService {
	if isNil(store) {
		panic("auth service initialization failed: store cannot be nil")
	}
	if isNil(tokenMaker) {
		panic("auth service initialization failed: tokenMaker cannot be nil")
	}
	if isNil(refreshRepo) {
		panic("auth service initialization failed: refreshRepo cannot be nil")
	}
	if isNil(otpService) {
		panic("auth service initialization failed: otpService cannot be nil")
	}
	if isNil(mailService) {
		panic("auth service initialization failed: mailService cannot be nil")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = constants.AccessTokenDuration
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = constants.RefreshTokenDuration
	}
	return &AuthService{
		store:       store,
		tokenMaker:  tokenMaker,
		refreshRepo: refreshRepo,
		otpService:  otpService,
		mailService: mailService,
		cfg:         cfg,
		now:         time.Now,
	}
}

var _ IAuthService = (*AuthService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AuthService) Register(ctx context.Context, arg RegisterParams) (*model.User, error) {
	arg.Email = normalizeEmail(arg.Email)
	if err := util.ValidatePassword(arg.Password); err != nil {
		return nil, apperr.New(apperr.ValidationCode, err.Error())
	}

	// 已存在的帳號: 已驗證 => 衝突, 未驗證且未過期 => 要求驗證, 未驗證且過期 => 覆蓋
	existing, err := a.store.GetUserByEmail(ctx, arg.Email)
	if err != nil && !db.IsNotFound(err) {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		if existing.IsEmailVerified {
			return nil, apperr.New(apperr.ConflictCode, "email is already registered")
		}
		if a.now().Sub(existing.CreatedAt) < constants.UnverifiedRegistrationTTL {
			return nil, apperr.New(apperr.ValidationCode, "registration pending, please verify your email")
		}
	}

	referredByID, err := a.resolveReferral(ctx, arg.ReferralCode)
	if err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(arg.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		Email:        arg.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(arg.FirstName),
		LastName:     strings.TrimSpace(arg.LastName),
		PhoneNumber:  arg.PhoneNumber,
		Role:         model.RoleCustomer,
		ReferralCode: util.GenerateReferralCode(a.now()),
		ReferredByID: referredByID,
	}

	err = a.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if existing != nil {
			if err := tx.HardDeleteUser(ctx, existing.ID); err != nil {
				return err
			}
		}
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		ownerID := user.ID
		return tx.CreatePromoCode(ctx, &model.PromoCode{
			Code:          user.ReferralCode,
			OwnerUserID:   &ownerID,
			IsActive:      true,
			DiscountType:  model.DiscountFixed,
			DiscountValue: a.cfg.ReferralDiscount,
		})
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, "email is already registered", err)
		}
		return nil, apperr.Internal(err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user registered")

	if err := a.otpService.Send(ctx, redis_repo.OTPEmailVerification, user.Email, user.FirstName); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("send verification otp failed")
	}
	return user, nil
}

// resolveReferral 推薦碼可以是使用者的個人推薦碼或一般促銷碼
// 個人推薦碼返回推薦人id
func (a *AuthService) resolveReferral(ctx context.Context, code string) (*uuid.UUID, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	referrer, err := a.store.GetUserByReferralCode(ctx, code)
	if err == nil {
		id := referrer.ID
		return &id, nil
	}
	if !db.IsNotFound(err) {
		return nil, apperr.Internal(err)
	}

	promo, err := a.store.GetActivePromoCode(ctx, code, a.now())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.InvalidPromoCode, "invalid referral code")
		}
		return nil, apperr.Internal(err)
	}
	if promo.IsExhausted() {
		return nil, apperr.New(apperr.PromoExhaustedCode, "referral code has reached its usage limit")
	}
	return nil, nil
}

func (a *AuthService) VerifyEmail(ctx context.Context, email, code string) (*AuthResult, error) {
	email = normalizeEmail(email)
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.ValidationCode, "invalid or expired code")
		}
		return nil, apperr.Internal(err)
	}
	if user.IsEmailVerified {
		return nil, apperr.New(apperr.ValidationCode, "email is already verified")
	}

	if err := a.otpService.Verify(ctx, redis_repo.OTPEmailVerification, email, code); err != nil {
		return nil, err
	}

	now := a.now()
	user.IsEmailVerified = true
	user.LastLoginAt = &now
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	if user.ReferredByID != nil {
		if err := a.store.IncrementReferralUses(ctx, *user.ReferredByID); err != nil {
			log.Warn().Err(err).Str("referrer_id", user.ReferredByID.String()).Msg("increment referral uses failed")
		}
	}

	err = a.mailService.SendWelcomeEmail(ctx, WelcomeEmailData{Email: user.Email, Name: user.FirstName, ReferralCode: user.ReferralCode})
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("send welcome email failed")
	}

	return a.issueTokens(ctx, user)
}

func (a *AuthService) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := a.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
		}
		return nil, apperr.Internal(err)
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
	}
	return user, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := a.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsEmailVerified {
		return nil, apperr.New(apperr.ValidationCode, "email not verified")
	}
	return a.login(ctx, user)
}

func (a *AuthService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := a.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperr.New(apperr.ForbiddenCode, "admin access required")
	}
	return a.login(ctx, user)
}

func (a *AuthService) login(ctx context.Context, user *model.User) (*AuthResult, error) {
	now := a.now()
	user.LastLoginAt = &now
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return a.issueTokens(ctx, user)
}

func (a *AuthService) AdminRegister(ctx context.Context, arg RegisterParams, adminSecret string) (*AuthResult, error) {
	if a.cfg.AdminSecret == "" || subtle.ConstantTimeCompare([]byte(a.cfg.AdminSecret), []byte(adminSecret)) != 1 {
		return nil, apperr.New(apperr.ForbiddenCode, "invalid admin secret")
	}
	if err := util.ValidatePassword(arg.Password); err != nil {
		return nil, apperr.New(apperr.ValidationCode, err.Error())
	}

	hash, err := util.HashPassword(arg.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		Email:           normalizeEmail(arg.Email),
		PasswordHash:    hash,
		FirstName:       strings.TrimSpace(arg.FirstName),
		LastName:        strings.TrimSpace(arg.LastName),
		PhoneNumber:     arg.PhoneNumber,
		Role:            model.RoleAdmin,
		IsEmailVerified: true,
		ReferralCode:    util.GenerateReferralCode(a.now()),
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, "email is already registered", err)
		}
		return nil, apperr.Internal(err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("admin registered")
	return a.login(ctx, user)
}

func (a *AuthService) ResendOTP(ctx context.Context, email string, purpose redis_repo.OTPPurpose) error {
	email = normalizeEmail(email)
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return apperr.Internal(err)
	}
	if purpose == redis_repo.OTPEmailVerification && user.IsEmailVerified {
		return apperr.New(apperr.ValidationCode, "email is already verified")
	}
	return a.otpService.Send(ctx, purpose, email, user.FirstName)
}

func (a *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return apperr.Internal(err)
	}

	err = a.otpService.Send(ctx, redis_repo.OTPPasswordReset, email, user.FirstName)
	if err != nil && !apperr.Is(err, apperr.TooManyRequestsCode) {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("send password reset otp failed")
	}
	return nil
}

func (a *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if err := util.ValidatePassword(newPassword); err != nil {
		return apperr.New(apperr.ValidationCode, err.Error())
	}

	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.New(apperr.ValidationCode, "invalid or expired code")
		}
		return apperr.Internal(err)
	}

	if err := a.otpService.Verify(ctx, redis_repo.OTPPasswordReset, email, code); err != nil {
		return err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	user.PasswordHash = hash
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return apperr.Internal(err)
	}

	if err := a.refreshRepo.DeleteRefreshToken(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("revoke refresh token failed")
	}
	return nil
}

func (a *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	payload, err := a.tokenMaker.VerifyToken(refreshToken, token.RefreshToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.UnauthenticatedCode, "invalid refresh token", err)
	}

	stored, err := a.refreshRepo.GetRefreshToken(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrRefreshTokenNotFound) {
			return nil, apperr.New(apperr.UnauthenticatedCode, "refresh token has been revoked")
		}
		return nil, apperr.Internal(err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(util.HashToken(refreshToken))) != 1 {
		return nil, apperr.New(apperr.UnauthenticatedCode, "refresh token has been revoked")
	}

	user, err := a.store.GetUserByID(ctx, payload.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.UnauthenticatedCode, "user no longer exists")
		}
		return nil, apperr.Internal(err)
	}
	return a.issueTokens(ctx, user)
}

func (a *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.refreshRepo.DeleteRefreshToken(ctx, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// issueTokens 簽發新的token組, refresh token只保存雜湊
func (a *AuthService) issueTokens(ctx context.Context, user *model.User) (*AuthResult, error) {
	accessToken, accessPayload, err := a.tokenMaker.CreateToken(user.ID, user.Email, user.Role, token.AccessToken, a.cfg.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refreshToken, refreshPayload, err := a.tokenMaker.CreateToken(user.ID, user.Email, user.Role, token.RefreshToken, a.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := a.refreshRepo.SaveRefreshToken(ctx, user.ID, util.HashToken(refreshToken), a.cfg.RefreshTokenTTL); err != nil {
		return nil, apperr.Internal(err)
	}

	return &AuthResult{
		User:                  user,
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessPayload.ExpiredAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshPayload.ExpiredAt,
	}, nil
}

package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/infra/cache"
)

type OTPPurpose string

const (
	OTPEmailVerification OTPPurpose = "email_verification"
	OTPPasswordReset     OTPPurpose = "password_reset"
)

var ErrOTPNotFound = errors.New("otp not found")

type OTPRecord struct {
	CodeHash string
	Attempts int
}

type IOTPRepository interface {
	SaveOTP(ctx context.Context, purpose OTPPurpose, email, codeHash string, ttl time.Duration) error
	GetOTP(ctx context.Context, purpose OTPPurpose, email string) (*OTPRecord, error)
	// IncrAttempts 返回累加後的嘗試次數
	IncrAttempts(ctx context.Context, purpose OTPPurpose, email string) (int, error)
	DeleteOTP(ctx context.Context, purpose OTPPurpose, email string) error
	// AcquireCooldown 冷卻時間內重複呼叫會返回false
	AcquireCooldown(ctx context.Context, purpose OTPPurpose, email string, cooldown time.Duration) (bool, error)
}

/*
結構:

	otp:{purpose}:{email}: {
		code_hash: sha256(code),
		attempts: 0,
	}

otp_cooldown:{purpose}:{email}: 1
*/
type OTPRepo struct {
	cache cache.Cache
}

func NewOTPRepo(c cache.Cache) *OTPRepo {
	return &OTPRepo{cache: c}
}

var _ IOTPRepository = (*OTPRepo)(nil)

func generateOTPKey(purpose OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, strings.ToLower(email))
}

func generateOTPCooldownKey(purpose OTPPurpose, email string) string {
	return fmt.Sprintf("otp_cooldown:%s:%s", purpose, strings.ToLower(email))
}

// SaveOTP 覆蓋舊的OTP並重設嘗試次數
func (r *OTPRepo) SaveOTP(ctx context.Context, purpose OTPPurpose, email, codeHash string, ttl time.Duration) error {
	return r.cache.HSet(ctx, generateOTPKey(purpose, email), ttl, map[string]any{
		"code_hash": codeHash,
		"attempts":  0,
	})
}

// GetOTP
// 錯誤:
//   - ErrOTPNotFound: 不存在或已過期
func (r *OTPRepo) GetOTP(ctx context.Context, purpose OTPPurpose, email string) (*OTPRecord, error) {
	fields, err := r.cache.HGetAll(ctx, generateOTPKey(purpose, email))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, err
	}

	attempts, err := strconv.Atoi(fields["attempts"])
	if err != nil {
		attempts = 0
	}
	return &OTPRecord{CodeHash: fields["code_hash"], Attempts: attempts}, nil
}

func (r *OTPRepo) IncrAttempts(ctx context.Context, purpose OTPPurpose, email string) (int, error) {
	n, err := r.cache.HIncrBy(ctx, generateOTPKey(purpose, email), "attempts", 1)
	return int(n), err
}

func (r *OTPRepo) DeleteOTP(ctx context.Context, purpose OTPPurpose, email string) error {
	return r.cache.Delete(ctx, generateOTPKey(purpose, email))
}

func (r *OTPRepo) AcquireCooldown(ctx context.Context, purpose OTPPurpose, email string, cooldown time.Duration) (bool, error) {
	return r.cache.SetNX(ctx, generateOTPCooldownKey(purpose, email), 1, cooldown)
}

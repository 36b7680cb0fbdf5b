package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/infra/cache"
	"github.com/google/uuid"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type IRefreshTokenRepository interface {
	// SaveRefreshToken 每個使用者只保留一組, 新的覆蓋舊的
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
}

type RefreshTokenRepo struct {
	cache cache.Cache
}

func NewRefreshTokenRepo(c cache.Cache) *RefreshTokenRepo {
	return &RefreshTokenRepo{cache: c}
}

var _ IRefreshTokenRepository = (*RefreshTokenRepo)(nil)

func generateRefreshTokenKey(userID uuid.UUID) string {
	return fmt.Sprintf("refresh_token:%s", userID)
}

func (r *RefreshTokenRepo) SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, ttl time.Duration) error {
	return r.cache.Set(ctx, generateRefreshTokenKey(userID), tokenHash, ttl)
}

// GetRefreshToken 返回儲存的token hash
// 錯誤:
//   - ErrRefreshTokenNotFound: 已登出或已過期
func (r *RefreshTokenRepo) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	hash, err := r.cache.Get(ctx, generateRefreshTokenKey(userID))
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", ErrRefreshTokenNotFound
	}
	return hash, err
}

func (r *RefreshTokenRepo) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	return r.cache.Delete(ctx, generateRefreshTokenKey(userID))
}

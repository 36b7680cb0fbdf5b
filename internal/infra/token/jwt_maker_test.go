package token

import (
	"testing"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "access-secret-access-secret-1234567890"
	testRefreshSecret = "refresh-secret-refresh-secret-123456789"
)

func newTestMaker(t *testing.T) *JWTMaker {
	maker, err := NewJWTMaker(testAccessSecret, testRefreshSecret)
	require.NoError(t, err)
	return maker
}

func TestNewJWTMakerRejectsShortKey(t *testing.T) {
	_, err := NewJWTMaker("short", testRefreshSecret)
	require.Error(t, err)
}

func TestCreateAndVerifyToken(t *testing.T) {
	maker := newTestMaker(t)
	userID := uuid.New()

	tok, payload, err := maker.CreateToken(userID, "ada@example.com", model.RoleAdmin, AccessToken, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := maker.VerifyToken(tok, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, payload.ID, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.True(t, got.IsAdmin())
	assert.WithinDuration(t, payload.ExpiredAt, got.ExpiredAt, time.Second)
}

func TestVerifyTokenWrongType(t *testing.T) {
	maker := newTestMaker(t)

	refresh, _, err := maker.CreateToken(uuid.New(), "a@b.c", model.RoleCustomer, RefreshToken, time.Minute)
	require.NoError(t, err)

	// 不同secret, 直接簽章驗證失敗
	_, err = maker.VerifyToken(refresh, AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = maker.VerifyToken(refresh, RefreshToken)
	require.NoError(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	maker := newTestMaker(t)

	tok, _, err := maker.CreateToken(uuid.New(), "a@b.c", model.RoleCustomer, AccessToken, -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tok, AccessToken)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyGarbage(t *testing.T) {
	maker := newTestMaker(t)
	_, err := maker.VerifyToken("not-a-token", AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

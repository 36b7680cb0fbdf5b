package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
	ErrTokenType    = errors.New("token type mismatch")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const minSecretKeySize = 32

type Payload struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	Role      model.UserRole
	Type      TokenType
	IssuedAt  time.Time
	ExpiredAt time.Time
}

func (p *Payload) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}

type Maker interface {
	CreateToken(userID uuid.UUID, email string, role model.UserRole, tokenType TokenType, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string, tokenType TokenType) (*Payload, error)
}

type claims struct {
	Email string         `json:"email"`
	Role  model.UserRole `json:"role"`
	Type  TokenType      `json:"type"`
	jwt.RegisteredClaims
}

// JWTMaker access/refresh 使用不同的 secret
type JWTMaker struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewJWTMaker(accessSecret, refreshSecret string) (*JWTMaker, error) {
	if len(accessSecret) < minSecretKeySize || len(refreshSecret) < minSecretKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize)
	}
	return &JWTMaker{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}, nil
}

var _ Maker = (*JWTMaker)(nil)

func (m *JWTMaker) secret(tokenType TokenType) []byte {
	if tokenType == RefreshToken {
		return m.refreshSecret
	}
	return m.accessSecret
}

func (m *JWTMaker) CreateToken(userID uuid.UUID, email string, role model.UserRole, tokenType TokenType, duration time.Duration) (string, *Payload, error) {
	now := time.Now()
	payload := &Payload{
		ID:        uuid.New(),
		UserID:    userID,
		Email:     email,
		Role:      role,
		Type:      tokenType,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}

	c := claims{
		Email: email,
		Role:  role,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        payload.ID.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(payload.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(payload.ExpiredAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString(m.secret(tokenType))
	if err != nil {
		return "", nil, err
	}
	return signed, payload, nil
}

func (m *JWTMaker) VerifyToken(tokenStr string, tokenType TokenType) (*Payload, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret(tokenType), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if c.Type != tokenType {
		return nil, ErrTokenType
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, _ := uuid.Parse(c.ID)

	payload := &Payload{
		ID:     id,
		UserID: userID,
		Email:  c.Email,
		Role:   c.Role,
		Type:   c.Type,
	}
	if c.IssuedAt != nil {
		payload.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		payload.ExpiredAt = c.ExpiresAt.Time
	}
	return payload, nil
}

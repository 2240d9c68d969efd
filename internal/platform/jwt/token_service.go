package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

const (
	// DefaultAccessTTL is the access-token lifetime used when none is configured.
	DefaultAccessTTL = 15 * 24 * time.Hour
	// DefaultRefreshTTL is the refresh-token lifetime used when none is configured.
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// ErrInvalidToken is the only error Verify returns. It deliberately hides whether the
// token was malformed, expired or signed with another key.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT body shared by access and refresh tokens.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Config holds the secrets and lifetimes of both token classes.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService signs and verifies access and refresh tokens with independent secrets.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenService creates a TokenService. Non-positive lifetimes fall back to the defaults.
func NewTokenService(cfg Config) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

// IssueAccessToken signs {userId, email} with the access secret.
func (s *TokenService) IssueAccessToken(userID, email string) (string, error) {
	return s.sign(userID, email, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs {userId, email} with the refresh secret.
func (s *TokenService) IssueRefreshToken(userID, email string) (string, error) {
	return s.sign(userID, email, s.refreshSecret, s.refreshTTL)
}

// VerifyAccessToken validates a token against the access secret.
func (s *TokenService) VerifyAccessToken(token string) (entity.TokenPayload, error) {
	return s.Verify(token, s.accessSecret)
}

// VerifyRefreshToken validates a token against the refresh secret.
func (s *TokenService) VerifyRefreshToken(token string) (entity.TokenPayload, error) {
	return s.Verify(token, s.refreshSecret)
}

// Verify checks the signature (HMAC only) and expiry of token and returns its payload.
// Any failure yields ErrInvalidToken.
func (s *TokenService) Verify(token string, secret []byte) (entity.TokenPayload, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return entity.TokenPayload{}, ErrInvalidToken
	}
	return entity.TokenPayload{UserID: claims.UserID, Email: claims.Email}, nil
}

func (s *TokenService) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// jti keeps two tokens issued within the same second distinct
			ID: uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

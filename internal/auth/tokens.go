package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
	KindReset   TokenKind = "reset"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID string    `json:"id"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role,omitempty"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ResetTTL      time.Duration
}

// TokenService signs and verifies HS256 tokens. It holds no state besides its secrets.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = cfg.AccessSecret + "-refresh"
	}
	return &TokenService{cfg: cfg, now: time.Now}
}

func (s *TokenService) GenerateAccessToken(userID, email, role string) (string, error) {
	token, _, err := s.sign(s.cfg.AccessSecret, s.cfg.AccessTTL, Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Kind:   KindAccess,
	})
	return token, err
}

// GenerateRefreshToken returns the token and its expiry.
func (s *TokenService) GenerateRefreshToken(userID string) (string, time.Time, error) {
	return s.sign(s.cfg.RefreshSecret, s.cfg.RefreshTTL, Claims{UserID: userID, Kind: KindRefresh})
}

func (s *TokenService) GenerateResetToken(userID string) (string, time.Time, error) {
	return s.sign(s.cfg.AccessSecret, s.cfg.ResetTTL, Claims{UserID: userID, Kind: KindReset})
}

func (s *TokenService) ParseAccessToken(token string) (*Claims, error) {
	return s.parse(token, s.cfg.AccessSecret, KindAccess)
}

func (s *TokenService) ParseRefreshToken(token string) (*Claims, error) {
	return s.parse(token, s.cfg.RefreshSecret, KindRefresh)
}

func (s *TokenService) ParseResetToken(token string) (*Claims, error) {
	return s.parse(token, s.cfg.AccessSecret, KindReset)
}

func (s *TokenService) sign(secret string, ttl time.Duration, claims Claims) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", claims.Kind, err)
	}
	return signed, expiresAt, nil
}

func (s *TokenService) parse(tokenString, secret string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

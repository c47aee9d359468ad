package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// TokenKind selects the signing secret.
type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

func (k TokenKind) String() string {
	if k == RefreshToken {
		return "refresh"
	}
	return "access"
}

// Claims is the payload of both token kinds. Refresh tokens carry only userId.
type Claims struct {
	UserID int    `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AccessClaims struct {
	UserID int
	Email  string
	Role   string
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
	logger        zerolog.Logger
}

func NewTokenService(cfg TokenConfig, logger zerolog.Logger) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
		logger:        logger,
	}
}

func (s *TokenService) MintAccessToken(c AccessClaims) (string, error) {
	token, _, err := s.mint(Claims{UserID: c.UserID, Email: c.Email, Role: c.Role}, s.accessSecret, s.accessTTL)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", c.UserID).Msg("Error generating access token")
		return "", err
	}
	return token, nil
}

// MintRefreshToken returns the signed token and its expiry, which the caller
// persists alongside it.
func (s *TokenService) MintRefreshToken(userID int) (string, time.Time, error) {
	token, expiresAt, err := s.mint(Claims{UserID: userID}, s.refreshSecret, s.refreshTTL)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error generating refresh token")
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *TokenService) mint(claims Claims, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry against the secret for kind. Expired
// tokens yield ErrTokenExpired; every other failure yields ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret := s.accessSecret
	if kind == RefreshToken {
		secret = s.refreshSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		s.logger.Debug().Err(err).Stringer("kind", kind).Msg("Token rejected")
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

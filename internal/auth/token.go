package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

// JWTTokenGenerator signs HS256 access and refresh tokens. Each kind has its own
// secret and carries a token_type claim, so one can never stand in for the other.
type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	now                func() time.Time
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		now:                time.Now,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID string) (string, error) {
	return j.sign(userID, TokenTypeAccess, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID string) (string, error) {
	return j.sign(userID, TokenTypeRefresh, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

// Pair issues a fresh access and refresh token for userID.
func (j *JWTTokenGenerator) Pair(userID string) (Tokens, error) {
	access, err := j.GenerateAccessToken(userID)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := j.GenerateRefreshToken(userID)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, TokenTypeAccess, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, TokenTypeRefresh, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, tokenType string, ttl time.Duration, secret []byte) (string, error) {
	now := j.clock()
	claims := &Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (j *JWTTokenGenerator) validate(tokenString, tokenType string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(j.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if !token.Valid || claims.TokenType != tokenType || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (j *JWTTokenGenerator) clock() time.Time {
	if j.now == nil {
		return time.Now()
	}
	return j.now()
}

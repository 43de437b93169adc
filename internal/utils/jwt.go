package utils

import (
	"fmt"
	"time"

	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates signed access/refresh tokens. The two
// kinds share one signing key and are told apart by the "type" claim, which
// every validation call site must check.
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

type signedClaims struct {
	UserID    int64  `json:"userId"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

func (j *JWTManager) generate(email string, userID int64, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &signedClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// GenerateAccessToken generates a new access token
func (j *JWTManager) GenerateAccessToken(email string, userID int64) (string, error) {
	return j.generate(email, userID, domain.TokenTypeAccess, j.accessTokenExpiry)
}

// GenerateRefreshToken generates a new refresh token
func (j *JWTManager) GenerateRefreshToken(email string, userID int64) (string, error) {
	return j.generate(email, userID, domain.TokenTypeRefresh, j.refreshTokenExpiry)
}

// ParseToken verifies the signature and structure of a token and returns its
// claims. Expired, tampered and malformed tokens all fail here.
func (j *JWTManager) ParseToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &signedClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*signedClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("missing iat or exp claim")
	}

	return &domain.TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Subject,
		TokenType: claims.TokenType,
		Iat:       claims.IssuedAt.Unix(),
		Exp:       claims.ExpiresAt.Unix(),
	}, nil
}

// IsAccessToken reports whether the token parses as a valid access-kind
// token. Any parse failure yields false.
func (j *JWTManager) IsAccessToken(tokenString string) bool {
	claims, err := j.ParseToken(tokenString)
	return err == nil && claims.TokenType == domain.TokenTypeAccess
}

// IsRefreshToken reports whether the token parses as a valid refresh-kind
// token. Any parse failure yields false.
func (j *JWTManager) IsRefreshToken(tokenString string) bool {
	claims, err := j.ParseToken(tokenString)
	return err == nil && claims.TokenType == domain.TokenTypeRefresh
}

// AccessExpirySeconds returns the access token lifetime in seconds, exposed
// for client-side expiry hinting in response payloads.
func (j *JWTManager) AccessExpirySeconds() int64 {
	return int64(j.accessTokenExpiry.Seconds())
}

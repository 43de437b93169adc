package domain

import "time"

// Token kinds carried in the "type" claim. A refresh token is never accepted
// where an access token is required, and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims represents the verified claim set of a signed token:
// sub = email, userId, type, iat, exp.
type TokenClaims struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"sub"`
	TokenType string `json:"type"`
	Iat       int64  `json:"iat"`
	Exp       int64  `json:"exp"`
}

// IsExpired checks if the token is expired.
func (tc TokenClaims) IsExpired() bool {
	return time.Now().Unix() > tc.Exp
}

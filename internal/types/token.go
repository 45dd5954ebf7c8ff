package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token. Subject carries the
// username, UserID the numeric identity.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

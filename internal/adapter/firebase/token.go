package firebase

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// IDTokenClaims are the claims of a Firebase ID token we read
type IDTokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ParseIDToken decodes an ID token without verifying its signature.
// Only the claims are read here; the backend checks the signature.
func ParseIDToken(idToken string) (*IDTokenClaims, error) {
	claims := &IDTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token: %w", err)
	}
	return claims, nil
}

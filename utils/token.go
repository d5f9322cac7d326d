package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a Yazio access token without verifying
// the signature (the signing key belongs to Yazio). Returns nil when the
// token carries no exp claim.
func TokenExpiry(tokenString string) (*time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("failed to read exp claim: %w", err)
	}
	if exp == nil {
		return nil, nil
	}
	return &exp.Time, nil
}

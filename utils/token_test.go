package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tokenString := signedToken(t, jwt.MapClaims{"exp": exp.Unix()})

	got, err := TokenExpiry(tokenString)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(exp))
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	tokenString := signedToken(t, jwt.MapClaims{"sub": "user"})

	got, err := TokenExpiry(tokenString)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenExpiryMalformed(t *testing.T) {
	_, err := TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

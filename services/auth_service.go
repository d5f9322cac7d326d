package services

import (
	"context"
	"errors"
	"time"

	"github.com/paccolajoao/yazio-consumer/models"
	"github.com/paccolajoao/yazio-consumer/utils"
)

type AuthService struct {
	client *YazioClient
}

func NewAuthService(client *YazioClient) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges email/password for a Yazio bearer token via the password
// grant. Expiry comes from expires_in when present, otherwise from the
// token's own exp claim.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthToken, error) {
	data, err := s.client.LoginPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	access, _ := data["access_token"].(string)
	if access == "" {
		return nil, errors.New("token response missing access_token")
	}
	refresh, _ := data["refresh_token"].(string)

	token := &models.AuthToken{AccessToken: access, RefreshToken: refresh}
	if secs, ok := toFloat(data["expires_in"]); ok && secs > 0 {
		exp := time.Now().Add(time.Duration(secs) * time.Second)
		token.ExpiresAt = &exp
	} else if exp, err := utils.TokenExpiry(access); err == nil {
		token.ExpiresAt = exp
	}
	return token, nil
}

package models

import "time"

// AuthToken is the Yazio credential the pipeline consumes. It is owned by
// the caller and never refreshed or mutated internally.
type AuthToken struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the token carries a known, past expiry.
func (t AuthToken) Expired() bool {
	return t.ExpiresAt != nil && time.Now().After(*t.ExpiresAt)
}

package session

import (
	"errors"
	"time"
)

var ErrEmptyAccessToken = errors.New("access token is required")

// TokenPair is a plaintext provider credential. It exists only while a provider call is made.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewTokenPair(access, refresh string) (TokenPair, error) {
	if access == "" {
		return TokenPair{}, ErrEmptyAccessToken
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (p TokenPair) CanRefresh() bool {
	return p.RefreshToken != ""
}

// Sealed is the at-rest form of a TokenPair; each token is a vault blob.
// An empty SealedRefresh means no refresh token was registered.
type Sealed struct {
	TenantID      string
	SealedAccess  string
	SealedRefresh string
	UpdatedAt     time.Time
}

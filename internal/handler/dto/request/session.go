package request

import (
	"paylink-vending/internal/domain/session"
)

type RegisterSessionRequest struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token"`
}

func (r *RegisterSessionRequest) ToDomain() (session.TokenPair, error) {
	return session.NewTokenPair(r.AccessToken, r.RefreshToken)
}

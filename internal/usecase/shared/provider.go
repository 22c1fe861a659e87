package shared

//go:generate mockgen -source=provider.go -destination=../../../tests/mock/shared/provider.go -package=sharedmock

import (
	"context"

	"paylink-vending/internal/domain/session"
)

const (
	LinkStatusPending   = "PENDING"
	LinkStatusCompleted = "COMPLETED"
	LinkStatusSuccess   = "SUCCESS"
)

// ProviderSession authenticates provider calls. It carries plaintext and must not be stored.
type ProviderSession struct {
	AccessToken string
}

type LinkInfo struct {
	SenderName string
	SenderID   string
	IconURL    string
	Amount     int64
	Status     string
}

// IsTerminal reports whether the provider already considers the link received.
func (l LinkInfo) IsTerminal() bool {
	return l.Status == LinkStatusCompleted || l.Status == LinkStatusSuccess
}

// PaymentProvider wraps the payment provider's link API.
//
// Errors are marked with errs.ErrProviderUnauthorized or errs.ErrProviderUnavailable (Verify),
// errs.ErrSessionExpired, errs.ErrLinkCheckFailed, errs.ErrClaimFailed or errs.ErrLinkAlreadyUsed.
type PaymentProvider interface {
	Verify(ctx context.Context, s ProviderSession) error
	Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error)
	CheckLink(ctx context.Context, s ProviderSession, link string) (LinkInfo, error)
	Claim(ctx context.Context, s ProviderSession, link, password string) error
}

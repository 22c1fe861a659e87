package commands

//go:generate mockgen -source=session.go -destination=../../../tests/mock/commands/session.go -package=commandsmock

import (
	"context"
	"log/slog"

	"paylink-vending/internal/domain/session"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"

	"golang.org/x/sync/singleflight"
)

// CredentialSealer encrypts provider tokens at rest. Implemented by vault.Vault.
type CredentialSealer interface {
	Seal(plaintext []byte) (string, error)
	Open(sealed string) ([]byte, error)
}

type SessionCommands interface {
	// Acquire returns a verified provider session, refreshing at most once.
	Acquire(ctx context.Context, tenantID string) (shared.ProviderSession, error)
	Register(ctx context.Context, tenantID string, pair session.TokenPair) error
	// Refresh forces the refresh path regardless of the access token's state.
	Refresh(ctx context.Context, tenantID string) error
}

type sessionCommandsImpl struct {
	sessions shared.SessionRepository
	provider shared.PaymentProvider
	sealer   CredentialSealer
	clock    clock.Clock
	logger   *slog.Logger

	refreshes singleflight.Group
}

func NewSessionCommands(
	sessions shared.SessionRepository,
	provider shared.PaymentProvider,
	sealer CredentialSealer,
	clock clock.Clock,
	logger *slog.Logger,
) SessionCommands {
	return &sessionCommandsImpl{
		sessions: sessions,
		provider: provider,
		sealer:   sealer,
		clock:    clock,
		logger:   logger,
	}
}

func (s *sessionCommandsImpl) Acquire(ctx context.Context, tenantID string) (shared.ProviderSession, error) {
	sealed, err := s.load(ctx, tenantID)
	if err != nil {
		return shared.ProviderSession{}, err
	}

	access, err := s.sealer.Open(sealed.SealedAccess)
	if err != nil {
		return shared.ProviderSession{}, errs.Wrap(err, "open access token")
	}
	ps := shared.ProviderSession{AccessToken: string(access)}

	err = s.provider.Verify(ctx, ps)
	if err == nil {
		return ps, nil
	}
	if !errs.Is(err, errs.ErrProviderUnauthorized) {
		s.logger.Warn("provider session check failed without rejection, not refreshing",
			slog.String("tenant", tenantID),
			slog.Any("error", err),
		)
		return shared.ProviderSession{}, errs.Wrap(err, "verify provider session")
	}

	s.logger.Info("provider rejected access token, refreshing", slog.String("tenant", tenantID))
	pair, err := s.refresh(ctx, sealed)
	if err != nil {
		return shared.ProviderSession{}, err
	}
	return shared.ProviderSession{AccessToken: pair.AccessToken}, nil
}

func (s *sessionCommandsImpl) Register(ctx context.Context, tenantID string, pair session.TokenPair) error {
	if tenantID == "" {
		return errs.Mark(errs.New("tenant id is required"), errs.ErrInvalidIntent)
	}
	if _, err := session.NewTokenPair(pair.AccessToken, pair.RefreshToken); err != nil {
		return errs.Mark(err, errs.ErrInvalidIntent)
	}
	if err := s.store(ctx, tenantID, pair); err != nil {
		return err
	}
	s.logger.Info("provider session registered",
		slog.String("tenant", tenantID),
		slog.Bool("refreshable", pair.CanRefresh()),
	)
	return nil
}

func (s *sessionCommandsImpl) Refresh(ctx context.Context, tenantID string) error {
	sealed, err := s.load(ctx, tenantID)
	if err != nil {
		return err
	}
	_, err = s.refresh(ctx, sealed)
	return err
}

func (s *sessionCommandsImpl) load(ctx context.Context, tenantID string) (*session.Sealed, error) {
	sealed, err := s.sessions.Get(ctx, tenantID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Wrapf(err, "no provider session for tenant %s", tenantID), errs.ErrConfigMissing)
		}
		return nil, errs.Mark(errs.Wrap(err, "load provider session"), errs.ErrDatabaseOperationFailed)
	}
	return sealed, nil
}

// refresh is collapsed per tenant so concurrent purchases spend the refresh token once.
// A caller that read the pair before another refresh stored a new one reuses the stored
// pair instead of replaying a refresh token the provider has already rotated.
func (s *sessionCommandsImpl) refresh(ctx context.Context, rejected *session.Sealed) (session.TokenPair, error) {
	v, err, joined := s.refreshes.Do(rejected.TenantID, func() (any, error) {
		sealed, err := s.load(ctx, rejected.TenantID)
		if err != nil {
			return nil, err
		}
		if sealed.SealedAccess != rejected.SealedAccess {
			access, err := s.sealer.Open(sealed.SealedAccess)
			if err != nil {
				return nil, errs.Wrap(err, "open access token")
			}
			s.logger.Debug("provider session already refreshed", slog.String("tenant", rejected.TenantID))
			return session.TokenPair{AccessToken: string(access)}, nil
		}

		if sealed.SealedRefresh == "" {
			return nil, errs.Mark(errs.New("no refresh token registered"), errs.ErrSessionExpired)
		}
		rt, err := s.sealer.Open(sealed.SealedRefresh)
		if err != nil {
			return nil, errs.Wrap(err, "open refresh token")
		}

		pair, err := s.provider.Refresh(ctx, string(rt))
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "refresh provider session"), errs.ErrSessionExpired)
		}
		if !pair.CanRefresh() {
			pair.RefreshToken = string(rt)
		}
		if err := s.store(ctx, sealed.TenantID, pair); err != nil {
			return nil, err
		}
		return pair, nil
	})
	if err != nil {
		s.logger.Warn("provider session refresh failed",
			slog.String("tenant", rejected.TenantID),
			slog.Any("error", err),
		)
		return session.TokenPair{}, err
	}
	if joined {
		s.logger.Debug("joined in-flight session refresh", slog.String("tenant", rejected.TenantID))
	}
	return v.(session.TokenPair), nil
}

func (s *sessionCommandsImpl) store(ctx context.Context, tenantID string, pair session.TokenPair) error {
	sealedAccess, err := s.sealer.Seal([]byte(pair.AccessToken))
	if err != nil {
		return errs.Wrap(err, "seal access token")
	}
	var sealedRefresh string
	if pair.CanRefresh() {
		sealedRefresh, err = s.sealer.Seal([]byte(pair.RefreshToken))
		if err != nil {
			return errs.Wrap(err, "seal refresh token")
		}
	}

	err = s.sessions.Put(ctx, session.Sealed{
		TenantID:      tenantID,
		SealedAccess:  sealedAccess,
		SealedRefresh: sealedRefresh,
		UpdatedAt:     s.clock.Now(),
	})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "store provider session"), errs.ErrDatabaseOperationFailed)
	}
	return nil
}

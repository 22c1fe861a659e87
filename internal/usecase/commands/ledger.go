package commands

//go:generate mockgen -source=ledger.go -destination=../../../tests/mock/commands/ledger.go -package=commandsmock

import (
	"context"
	"log/slog"

	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"
)

type LedgerCommands interface {
	// MarkConsumed lets an operator retire a link by hand. Idempotent.
	MarkConsumed(ctx context.Context, tenantID, linkID string) error
}

type ledgerCommandsImpl struct {
	ledger shared.LedgerRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewLedgerCommands(ledger shared.LedgerRepository, clock clock.Clock, logger *slog.Logger) LedgerCommands {
	return &ledgerCommandsImpl{ledger: ledger, clock: clock, logger: logger}
}

func (l *ledgerCommandsImpl) MarkConsumed(ctx context.Context, tenantID, linkID string) error {
	if tenantID == "" || linkID == "" {
		return errs.Mark(errs.New("tenant and link id are required"), errs.ErrInvalidIntent)
	}
	if err := l.ledger.MarkConsumed(ctx, tenantID, linkID, l.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	l.logger.Info("link marked consumed by operator", slog.String("tenant", tenantID), slog.String("link_id", linkID))
	return nil
}

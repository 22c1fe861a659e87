package repository

import (
	"context"
	"time"

	"paylink-vending/internal/infra"
	"paylink-vending/internal/infra/db"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/pkg/pgconv"
	"paylink-vending/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type LedgerRepository struct {
	uow uow.UnitOfWork
}

func NewLedgerRepository(u uow.UnitOfWork) *LedgerRepository {
	return &LedgerRepository{uow: u}
}

func (r *LedgerRepository) IsConsumed(ctx context.Context, tenantID, linkID string) (bool, error) {
	var consumed bool
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		err := q.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM claim_ledger WHERE tenant_id = $1 AND link_id = $2 AND status = 'consumed')`,
			tenantID, linkID).Scan(&consumed)
		if err != nil {
			return infra.WrapRepoErr("failed to check ledger", err)
		}
		return nil
	})
	return consumed, err
}

func (r *LedgerRepository) Entry(ctx context.Context, tenantID, linkID string) (*shared.LedgerEntry, error) {
	var (
		status     string
		leaseUntil pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		err := q.QueryRow(ctx, `
SELECT status, lease_until, updated_at FROM claim_ledger WHERE tenant_id = $1 AND link_id = $2`,
			tenantID, linkID).Scan(&status, &leaseUntil, &updatedAt)
		if err != nil {
			if pgconv.IsNoRows(err) {
				return infra.WrapRepoErr("ledger entry not found", err, infra.KindNotFound)
			}
			return infra.WrapRepoErr("failed to read ledger entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &shared.LedgerEntry{
		TenantID:   tenantID,
		LinkID:     linkID,
		Status:     shared.LedgerStatus(status),
		LeaseUntil: pgconv.TimeFromPgtype(leaseUntil),
		UpdatedAt:  pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

// Begin inserts a processing row, or takes over one whose lease has expired.
// The conflict clause makes check-and-set a single statement.
func (r *LedgerRepository) Begin(ctx context.Context, tenantID, linkID string, now, leaseUntil time.Time) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, `
INSERT INTO claim_ledger (tenant_id, link_id, status, lease_until, updated_at)
VALUES ($1, $2, 'processing', $4, $3)
ON CONFLICT (tenant_id, link_id) DO UPDATE
    SET status = 'processing', lease_until = EXCLUDED.lease_until, updated_at = EXCLUDED.updated_at
    WHERE claim_ledger.status = 'processing' AND claim_ledger.lease_until <= $3`,
			tenantID, linkID, pgconv.TimeToPgtype(now), pgconv.TimeToPgtype(leaseUntil))
		if err != nil {
			return infra.WrapRepoErr("failed to begin ledger claim", err)
		}
		if tag.RowsAffected() == 1 {
			return nil
		}

		var status string
		if err := tx.QueryRow(ctx, `SELECT status FROM claim_ledger WHERE tenant_id = $1 AND link_id = $2`,
			tenantID, linkID).Scan(&status); err != nil {
			return infra.WrapRepoErr("failed to read contended ledger entry", err)
		}
		if shared.LedgerStatus(status) == shared.LedgerConsumed {
			return errs.Mark(errs.Newf("link %s already consumed", linkID), errs.ErrAlreadyConsumed)
		}
		return errs.Mark(errs.Newf("link %s is being claimed by another request", linkID), errs.ErrClaimInProgress)
	})
}

func (r *LedgerRepository) Release(ctx context.Context, tenantID, linkID string) error {
	return r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		if _, err := q.Exec(ctx, `
DELETE FROM claim_ledger WHERE tenant_id = $1 AND link_id = $2 AND status = 'processing'`,
			tenantID, linkID); err != nil {
			return infra.WrapRepoErr("failed to release ledger claim", err)
		}
		return nil
	})
}

func (r *LedgerRepository) MarkConsumed(ctx context.Context, tenantID, linkID string, now time.Time) error {
	return r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		if _, err := q.Exec(ctx, `
INSERT INTO claim_ledger (tenant_id, link_id, status, lease_until, updated_at)
VALUES ($1, $2, 'consumed', NULL, $3)
ON CONFLICT (tenant_id, link_id) DO UPDATE
    SET status = 'consumed', lease_until = NULL, updated_at = EXCLUDED.updated_at`,
			tenantID, linkID, pgconv.TimeToPgtype(now)); err != nil {
			return infra.WrapRepoErr("failed to mark link consumed", err)
		}
		return nil
	})
}

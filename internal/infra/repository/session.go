package repository

import (
	"context"

	"paylink-vending/internal/domain/session"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/infra/db"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// SessionRepository stores sealed blobs only; it never sees plaintext tokens.
type SessionRepository struct {
	uow uow.UnitOfWork
}

func NewSessionRepository(u uow.UnitOfWork) *SessionRepository {
	return &SessionRepository{uow: u}
}

func (r *SessionRepository) Get(ctx context.Context, tenantID string) (*session.Sealed, error) {
	out := session.Sealed{TenantID: tenantID}
	var updatedAt pgtype.Timestamptz
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		err := q.QueryRow(ctx, `
SELECT sealed_access, sealed_refresh, updated_at FROM provider_sessions WHERE tenant_id = $1`,
			tenantID).Scan(&out.SealedAccess, &out.SealedRefresh, &updatedAt)
		if err != nil {
			if pgconv.IsNoRows(err) {
				return infra.WrapRepoErr("provider session not found", err, infra.KindNotFound)
			}
			return infra.WrapRepoErr("failed to read provider session", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &out, nil
}

func (r *SessionRepository) Put(ctx context.Context, s session.Sealed) error {
	return r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		if _, err := q.Exec(ctx, `
INSERT INTO provider_sessions (tenant_id, sealed_access, sealed_refresh, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (tenant_id) DO UPDATE SET
    sealed_access = EXCLUDED.sealed_access,
    sealed_refresh = EXCLUDED.sealed_refresh,
    updated_at = EXCLUDED.updated_at`,
			s.TenantID, s.SealedAccess, s.SealedRefresh, pgconv.TimeToPgtype(s.UpdatedAt)); err != nil {
			return infra.WrapRepoErr("failed to store provider session", err)
		}
		return nil
	})
}

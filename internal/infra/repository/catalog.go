package repository

import (
	"context"

	"paylink-vending/internal/domain/catalog"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/infra/db"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/pgconv"
)

type CatalogRepository struct {
	uow   uow.UnitOfWork
	clock clock.Clock
}

func NewCatalogRepository(u uow.UnitOfWork, clk clock.Clock) *CatalogRepository {
	return &CatalogRepository{uow: u, clock: clk}
}

func (r *CatalogRepository) FindByID(ctx context.Context, tenantID, catalogID string) (*catalog.Catalog, error) {
	var title, rewardRoleID string
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		err := q.QueryRow(ctx, `
SELECT title, reward_role_id FROM catalogs WHERE tenant_id = $1 AND id = $2`,
			tenantID, catalogID).Scan(&title, &rewardRoleID)
		if err != nil {
			if pgconv.IsNoRows(err) {
				return infra.WrapRepoErr("catalog not found", err, infra.KindNotFound)
			}
			return infra.WrapRepoErr("failed to read catalog", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog.NewCatalog(catalogID, tenantID, title, rewardRoleID)
}

func (r *CatalogRepository) Save(ctx context.Context, c *catalog.Catalog) error {
	return r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		if _, err := q.Exec(ctx, `
INSERT INTO catalogs (tenant_id, id, title, reward_role_id, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (tenant_id, id) DO UPDATE SET
    title = EXCLUDED.title,
    reward_role_id = EXCLUDED.reward_role_id,
    updated_at = EXCLUDED.updated_at`,
			c.TenantID(), c.ID(), c.Title(), c.RewardRoleID(), pgconv.TimeToPgtype(r.clock.Now())); err != nil {
			return infra.WrapRepoErr("failed to upsert catalog", err)
		}
		return nil
	})
}

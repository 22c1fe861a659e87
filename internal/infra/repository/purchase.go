package repository

import (
	"context"

	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/infra/db"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/pgconv"
	"paylink-vending/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PurchaseRepository struct {
	uow uow.UnitOfWork
}

func NewPurchaseRepository(u uow.UnitOfWork) *PurchaseRepository {
	return &PurchaseRepository{uow: u}
}

type purchaseRow struct {
	ID         pgtype.UUID        `db:"id"`
	TenantID   string             `db:"tenant_id"`
	ProductID  string             `db:"product_id"`
	BuyerID    string             `db:"buyer_id"`
	SenderName string             `db:"sender_name"`
	SenderID   string             `db:"sender_id"`
	LinkID     string             `db:"link_id"`
	Link       string             `db:"link"`
	Quantity   int                `db:"quantity"`
	Total      int64              `db:"total"`
	Amount     int64              `db:"amount"`
	Status     string             `db:"status"`
	Outcome    string             `db:"outcome"`
	Detail     string             `db:"detail"`
	CreatedAt  pgtype.Timestamptz `db:"created_at"`
}

func (r *PurchaseRepository) Append(ctx context.Context, rec purchase.Record) error {
	return r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		_, err := q.Exec(ctx, `
INSERT INTO purchases (id, tenant_id, product_id, buyer_id, sender_name, sender_id, link_id, link,
                       quantity, total, amount, status, outcome, detail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			pgconv.UUIDToPgtype(rec.ID), rec.TenantID, rec.ProductID, rec.BuyerID, rec.SenderName, rec.SenderID,
			rec.LinkID, rec.Link, rec.Quantity, rec.Total, rec.Amount, string(rec.Status), string(rec.Outcome),
			rec.Detail, pgconv.TimeToPgtype(rec.CreatedAt))
		if err != nil {
			return infra.WrapRepoErr("failed to append purchase record", err)
		}
		return nil
	})
}

// ListByStatus returns newest first. limit <= 0 means no limit.
func (r *PurchaseRepository) ListByStatus(ctx context.Context, tenantID string, status purchase.RecordStatus, after *shared.RecordCursor, limit int) ([]purchase.Record, error) {
	var out []purchase.Record
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		var lim any
		if limit > 0 {
			lim = limit
		}
		var afterAt, afterID any
		if after != nil {
			afterAt, afterID = pgconv.TimeToPgtype(after.CreatedAt), pgconv.UUIDToPgtype(after.ID)
		}
		rows, err := q.Query(ctx, `
SELECT id, tenant_id, product_id, buyer_id, sender_name, sender_id, link_id, link,
       quantity, total, amount, status, outcome, detail, created_at
FROM purchases
WHERE tenant_id = $1 AND status = $2
  AND ($4::timestamptz IS NULL OR (created_at, id) < ($4, $5::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $3`, tenantID, string(status), lim, afterAt, afterID)
		if err != nil {
			return infra.WrapRepoErr("failed to query purchases", err)
		}
		list, err := pgx.CollectRows(rows, pgx.RowToStructByName[purchaseRow])
		if err != nil {
			return infra.WrapRepoErr("failed to scan purchases", err)
		}
		out = make([]purchase.Record, len(list))
		for i, row := range list {
			out[i] = purchase.Record{
				ID:         pgconv.UUIDFromPgtype(row.ID),
				TenantID:   row.TenantID,
				ProductID:  row.ProductID,
				BuyerID:    row.BuyerID,
				SenderName: row.SenderName,
				SenderID:   row.SenderID,
				LinkID:     row.LinkID,
				Link:       row.Link,
				Quantity:   row.Quantity,
				Total:      row.Total,
				Amount:     row.Amount,
				Status:     purchase.RecordStatus(row.Status),
				Outcome:    purchase.Outcome(row.Outcome),
				Detail:     row.Detail,
				CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
			}
		}
		return nil
	})
	return out, err
}

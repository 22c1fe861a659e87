package queries

//go:generate mockgen -source=purchase.go -destination=../../../tests/mock/queries/purchase.go -package=queriesmock

import (
	"context"

	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/usecase/shared"
)

type PurchaseQueries interface {
	// ListReconciliation returns purchases whose funds were claimed but whose goods
	// were not delivered, newest first. An empty cursor starts from the newest record.
	ListReconciliation(ctx context.Context, tenantID, cursor string, limit int) (*PurchaseRecordPage, error)
	ListCompleted(ctx context.Context, tenantID, cursor string, limit int) (*PurchaseRecordPage, error)
}

type purchaseQueriesImpl struct {
	repo shared.PurchaseRepository
}

func NewPurchaseQueries(repo shared.PurchaseRepository) PurchaseQueries {
	return &purchaseQueriesImpl{repo: repo}
}

func (q *purchaseQueriesImpl) ListReconciliation(ctx context.Context, tenantID, cursor string, limit int) (*PurchaseRecordPage, error) {
	return q.list(ctx, tenantID, purchase.RecordNeedsReconciliation, cursor, limit)
}

func (q *purchaseQueriesImpl) ListCompleted(ctx context.Context, tenantID, cursor string, limit int) (*PurchaseRecordPage, error) {
	return q.list(ctx, tenantID, purchase.RecordCompleted, cursor, limit)
}

func (q *purchaseQueriesImpl) list(ctx context.Context, tenantID string, status purchase.RecordStatus, cursor string, limit int) (*PurchaseRecordPage, error) {
	var after *shared.RecordCursor
	if cursor != "" {
		var err error
		if after, err = DecodeAfterCursor(cursor); err != nil {
			return nil, err
		}
	}

	limit = ValidateLimit(limit)
	// one extra row tells us whether another page exists
	recs, err := q.repo.ListByStatus(ctx, tenantID, status, after, limit+1)
	if err != nil {
		return nil, err
	}

	page := &PurchaseRecordPage{Records: make([]*PurchaseRecordView, 0, min(len(recs), limit))}
	if len(recs) > limit {
		recs = recs[:limit]
		last := recs[len(recs)-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	for _, r := range recs {
		page.Records = append(page.Records, &PurchaseRecordView{
			ID:         r.ID,
			TenantID:   r.TenantID,
			ProductID:  r.ProductID,
			BuyerID:    r.BuyerID,
			SenderName: r.SenderName,
			SenderID:   r.SenderID,
			LinkID:     r.LinkID,
			Link:       r.Link,
			Quantity:   r.Quantity,
			Total:      r.Total,
			Amount:     r.Amount,
			Status:     string(r.Status),
			Outcome:    r.Outcome.String(),
			Detail:     r.Detail,
			CreatedAt:  r.CreatedAt,
		})
	}
	return page, nil
}

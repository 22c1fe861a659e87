package queries

//go:generate mockgen -source=ledger.go -destination=../../../tests/mock/queries/ledger.go -package=queriesmock

import (
	"context"

	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/usecase/shared"
)

type LedgerQueries interface {
	IsConsumed(ctx context.Context, tenantID, linkID string) (bool, error)
	// Status accepts either a bare link id or a full payment link.
	Status(ctx context.Context, tenantID, link string) (*LinkStatusView, error)
}

type ledgerQueriesImpl struct {
	repo shared.LedgerRepository
}

func NewLedgerQueries(repo shared.LedgerRepository) LedgerQueries {
	return &ledgerQueriesImpl{repo: repo}
}

func (q *ledgerQueriesImpl) IsConsumed(ctx context.Context, tenantID, linkID string) (bool, error) {
	return q.repo.IsConsumed(ctx, tenantID, purchase.LinkID(linkID))
}

func (q *ledgerQueriesImpl) Status(ctx context.Context, tenantID, link string) (*LinkStatusView, error) {
	linkID := purchase.LinkID(link)
	e, err := q.repo.Entry(ctx, tenantID, linkID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &LinkStatusView{TenantID: tenantID, LinkID: linkID, Status: "unseen"}, nil
		}
		return nil, err
	}

	v := &LinkStatusView{
		TenantID:  e.TenantID,
		LinkID:    e.LinkID,
		Consumed:  e.Status == shared.LedgerConsumed,
		Status:    string(e.Status),
		UpdatedAt: &e.UpdatedAt,
	}
	if e.Status == shared.LedgerProcessing {
		v.LeaseUntil = &e.LeaseUntil
	}
	return v, nil
}

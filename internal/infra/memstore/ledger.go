package memstore

import (
	"context"
	"sync"
	"time"

	"paylink-vending/internal/infra"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"
)

type LedgerRepository struct {
	mu sync.Mutex
	m  map[key]shared.LedgerEntry
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{m: make(map[key]shared.LedgerEntry)}
}

func (r *LedgerRepository) IsConsumed(_ context.Context, tenantID, linkID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[key{tenantID, linkID}]
	return ok && e.Status == shared.LedgerConsumed, nil
}

func (r *LedgerRepository) Entry(_ context.Context, tenantID, linkID string) (*shared.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[key{tenantID, linkID}]
	if !ok {
		return nil, infra.NewNotFound("ledger entry not found")
	}
	return &e, nil
}

func (r *LedgerRepository) Begin(_ context.Context, tenantID, linkID string, now, leaseUntil time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{tenantID, linkID}
	if e, ok := r.m[k]; ok {
		switch {
		case e.Status == shared.LedgerConsumed:
			return errs.Mark(errs.Newf("link %s already consumed", linkID), errs.ErrAlreadyConsumed)
		case e.LeaseUntil.After(now):
			return errs.Mark(errs.Newf("link %s leased until %s", linkID, e.LeaseUntil.Format(time.RFC3339)), errs.ErrClaimInProgress)
		}
	}
	r.m[k] = shared.LedgerEntry{
		TenantID:   tenantID,
		LinkID:     linkID,
		Status:     shared.LedgerProcessing,
		LeaseUntil: leaseUntil,
		UpdatedAt:  now,
	}
	return nil
}

func (r *LedgerRepository) Release(_ context.Context, tenantID, linkID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{tenantID, linkID}
	if e, ok := r.m[k]; ok && e.Status == shared.LedgerProcessing {
		delete(r.m, k)
	}
	return nil
}

func (r *LedgerRepository) MarkConsumed(_ context.Context, tenantID, linkID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key{tenantID, linkID}] = shared.LedgerEntry{
		TenantID:  tenantID,
		LinkID:    linkID,
		Status:    shared.LedgerConsumed,
		UpdatedAt: now,
	}
	return nil
}

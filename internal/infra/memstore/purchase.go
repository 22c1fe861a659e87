package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/usecase/shared"
)

type PurchaseRepository struct {
	mu      sync.RWMutex
	records []purchase.Record
	ids     map[string]struct{}
}

func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{ids: make(map[string]struct{})}
}

func (r *PurchaseRepository) Append(_ context.Context, rec purchase.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ids[rec.ID.String()]; dup {
		return infra.WrapRepoErr("purchase record already exists", nil, infra.KindDuplicateKey)
	}
	r.ids[rec.ID.String()] = struct{}{}
	r.records = append(r.records, rec)
	return nil
}

// ListByStatus returns newest first. limit <= 0 means no limit.
// Timestamps compare at microsecond precision, matching the postgres store.
func (r *PurchaseRepository) ListByStatus(_ context.Context, tenantID string, status purchase.RecordStatus, after *shared.RecordCursor, limit int) ([]purchase.Record, error) {
	r.mu.RLock()
	matched := make([]purchase.Record, 0)
	for _, rec := range r.records {
		if rec.TenantID == tenantID && rec.Status == status && (after == nil || olderThan(rec, after)) {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if am, bm := a.CreatedAt.UnixMicro(), b.CreatedAt.UnixMicro(); am != bm {
			return am > bm
		}
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func olderThan(rec purchase.Record, c *shared.RecordCursor) bool {
	rm, cm := rec.CreatedAt.UnixMicro(), c.CreatedAt.UnixMicro()
	if rm != cm {
		return rm < cm
	}
	return bytes.Compare(rec.ID[:], c.ID[:]) < 0
}

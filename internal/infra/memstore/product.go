package memstore

import (
	"context"
	"sort"
	"sync"

	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/pkg/clock"
)

type productSlot struct {
	mu sync.Mutex
	p  *product.Product
}

// ProductRepository serializes mutations per product; the map lock is only held for lookups.
type ProductRepository struct {
	mu    sync.RWMutex
	m     map[key]*productSlot
	clock clock.Clock
}

func NewProductRepository(clk clock.Clock) *ProductRepository {
	return &ProductRepository{m: make(map[key]*productSlot), clock: clk}
}

func (r *ProductRepository) slot(tenantID, productID string) (*productSlot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[key{tenantID, productID}]
	return s, ok
}

func (r *ProductRepository) FindByID(_ context.Context, tenantID, productID string) (*product.Product, error) {
	s, ok := r.slot(tenantID, productID)
	if !ok {
		return nil, infra.NewNotFound("product not found")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Clone(), nil
}

func (r *ProductRepository) ListByTenant(_ context.Context, tenantID string) ([]*product.Product, error) {
	r.mu.RLock()
	slots := make([]*productSlot, 0)
	for k, s := range r.m {
		if k.tenant == tenantID {
			slots = append(slots, s)
		}
	}
	r.mu.RUnlock()

	out := make([]*product.Product, 0, len(slots))
	for _, s := range slots {
		s.mu.Lock()
		out = append(out, s.p.Clone())
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *ProductRepository) Save(_ context.Context, p *product.Product) error {
	stored := product.ReconstructProduct(p.ToParams(), r.clock.Now()).Clone()
	k := key{p.TenantID(), p.ID()}

	r.mu.Lock()
	s, ok := r.m[k]
	if !ok {
		r.m[k] = &productSlot{p: stored}
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	s.mu.Lock()
	s.p = stored
	s.mu.Unlock()
	return nil
}

func (r *ProductRepository) Allocate(_ context.Context, tenantID, productID string, quantity int) (product.Allocation, error) {
	s, ok := r.slot(tenantID, productID)
	if !ok {
		return product.Allocation{}, infra.NewNotFound("product not found")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Allocate(quantity, r.clock.Now())
}

func (r *ProductRepository) AddCredentials(_ context.Context, tenantID, productID string, creds []product.Credential) (int, error) {
	s, ok := r.slot(tenantID, productID)
	if !ok {
		return 0, infra.NewNotFound("product not found")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.p.Restock(creds, r.clock.Now()); err != nil {
		return 0, err
	}
	return s.p.Stock().Count(), nil
}

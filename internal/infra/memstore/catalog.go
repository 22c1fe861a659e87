package memstore

import (
	"context"
	"sync"

	"paylink-vending/internal/domain/catalog"
	"paylink-vending/internal/infra"
)

type CatalogRepository struct {
	mu sync.RWMutex
	m  map[key]catalog.Catalog
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{m: make(map[key]catalog.Catalog)}
}

func (r *CatalogRepository) FindByID(_ context.Context, tenantID, catalogID string) (*catalog.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.m[key{tenantID, catalogID}]
	if !ok {
		return nil, infra.NewNotFound("catalog not found")
	}
	return &c, nil
}

func (r *CatalogRepository) Save(_ context.Context, c *catalog.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key{c.TenantID(), c.ID()}] = *c
	return nil
}

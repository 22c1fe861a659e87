package queries

//go:generate mockgen -source=product.go -destination=../../../tests/mock/queries/product.go -package=queriesmock

import (
	"context"

	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"
)

type ProductQueries interface {
	GetByID(ctx context.Context, tenantID, productID string) (*ProductView, error)
	List(ctx context.Context, tenantID string) ([]*ProductView, error)
}

type productQueriesImpl struct {
	repo shared.ProductRepository
}

func NewProductQueries(repo shared.ProductRepository) ProductQueries {
	return &productQueriesImpl{repo: repo}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, tenantID, productID string) (*ProductView, error) {
	p, err := q.repo.FindByID(ctx, tenantID, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrProductNotFound)
		}
		return nil, err
	}
	return toProductView(p), nil
}

func (q *productQueriesImpl) List(ctx context.Context, tenantID string) ([]*ProductView, error) {
	ps, err := q.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	views := make([]*ProductView, 0, len(ps))
	for _, p := range ps {
		views = append(views, toProductView(p))
	}
	return views, nil
}

func toProductView(p *product.Product) *ProductView {
	s := p.Stock()
	return &ProductView{
		ID:           p.ID(),
		TenantID:     p.TenantID(),
		CatalogID:    p.CatalogID(),
		Name:         p.Name(),
		Description:  p.Description(),
		UnitPrice:    p.UnitPrice(),
		Kind:         p.Kind().String(),
		StockKind:    s.Kind().String(),
		StockCount:   s.Count(),
		StockDisplay: s.Display(),
		URL:          p.URL(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

//go:build unit || integration || e2e

package builder

import (
	"testing"
	"time"

	"paylink-vending/internal/domain/product"
	reqdto "paylink-vending/internal/handler/dto/request"
	"paylink-vending/internal/usecase/queries"

	"github.com/stretchr/testify/require"
)

type ProductBuilder struct {
	ID          string
	TenantID    string
	CatalogID   string
	Name        string
	Description string
	UnitPrice   int64
	Kind        product.Kind
	stock       func() (product.Stock, error)
	URL         string
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:          "item-1",
		TenantID:    "guild-1",
		CatalogID:   "panel-1",
		Name:        "Premium Pack",
		Description: "one month access",
		UnitPrice:   500,
		Kind:        product.KindCounted,
		stock:       func() (product.Stock, error) { return product.Counted(5) },
		URL:         "https://example.com/goods/premium",
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ProductBuilder) BuildDomain() (*product.Product, error) {
	stock, err := b.stock()
	if err != nil {
		return nil, err
	}
	return product.NewProduct(product.Params{
		ID:          b.ID,
		TenantID:    b.TenantID,
		CatalogID:   b.CatalogID,
		Name:        b.Name,
		Description: b.Description,
		UnitPrice:   b.UnitPrice,
		Kind:        b.Kind,
		Stock:       stock,
		URL:         b.URL,
	})
}

func (b *ProductBuilder) MustBuildDomain(t testing.TB) *product.Product {
	t.Helper()
	p, err := b.BuildDomain()
	require.NoError(t, err)
	return p
}

func (b *ProductBuilder) BuildUpsertDTO(t testing.TB) reqdto.UpsertProductRequest {
	t.Helper()
	p := b.MustBuildDomain(t)
	stock := reqdto.StockRequest{Kind: p.Stock().Kind().String()}
	switch p.Stock().Kind() {
	case product.StockCounted:
		stock.Count = p.Stock().Count()
	case product.StockPool:
		for _, c := range p.Stock().Credentials() {
			stock.Credentials = append(stock.Credentials, reqdto.CredentialRequest{Login: c.Login, Secret: c.Secret, Note: c.Note})
		}
	}
	return reqdto.UpsertProductRequest{
		CatalogID:   b.CatalogID,
		Name:        b.Name,
		Description: b.Description,
		UnitPrice:   b.UnitPrice,
		Kind:        b.Kind.String(),
		URL:         b.URL,
		Stock:       stock,
	}
}

func (b *ProductBuilder) BuildViewQuery(t testing.TB) *queries.ProductView {
	t.Helper()
	p := b.MustBuildDomain(t)
	return &queries.ProductView{
		ID:           p.ID(),
		TenantID:     p.TenantID(),
		CatalogID:    p.CatalogID(),
		Name:         p.Name(),
		Description:  p.Description(),
		UnitPrice:    p.UnitPrice(),
		Kind:         p.Kind().String(),
		StockKind:    p.Stock().Kind().String(),
		StockCount:   p.Stock().Count(),
		StockDisplay: p.Stock().Display(),
		URL:          p.URL(),
		UpdatedAt:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Fluent builder methods
func (b *ProductBuilder) WithID(id string) *ProductBuilder {
	b.ID = id
	return b
}

func (b *ProductBuilder) WithTenant(tenantID string) *ProductBuilder {
	b.TenantID = tenantID
	return b
}

func (b *ProductBuilder) WithCatalog(catalogID string) *ProductBuilder {
	b.CatalogID = catalogID
	return b
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

func (b *ProductBuilder) WithPrice(price int64) *ProductBuilder {
	b.UnitPrice = price
	return b
}

func (b *ProductBuilder) WithKind(kind product.Kind) *ProductBuilder {
	b.Kind = kind
	return b
}

func (b *ProductBuilder) WithURL(url string) *ProductBuilder {
	b.URL = url
	return b
}

func (b *ProductBuilder) WithCountedStock(n int) *ProductBuilder {
	b.Kind = product.KindCounted
	b.stock = func() (product.Stock, error) { return product.Counted(n) }
	return b
}

func (b *ProductBuilder) WithUnlimitedStock() *ProductBuilder {
	b.Kind = product.KindLink
	b.stock = func() (product.Stock, error) { return product.Unlimited(), nil }
	return b
}

func (b *ProductBuilder) WithPool(creds ...product.Credential) *ProductBuilder {
	b.Kind = product.KindCredentialPool
	b.stock = func() (product.Stock, error) { return product.Pool(creds) }
	return b
}

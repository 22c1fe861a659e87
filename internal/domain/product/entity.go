package product

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidKind       = errors.New("invalid product kind")
	ErrInvalidPrice      = errors.New("price must be a positive integer")
	ErrEmptyName         = errors.New("product name is required")
	ErrEmptyID           = errors.New("product id is required")
	ErrNegativeStock     = errors.New("stock cannot be negative")
	ErrEmptyCredential   = errors.New("credential must have a login or secret")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidStock      = errors.New("stock is not initialised")
	ErrInsufficientStock = errors.New("not enough stock for requested quantity")
	ErrStockKindMismatch = errors.New("stock kind does not match product kind")
	ErrPriceOverflow     = errors.New("total price overflows")
)

type Product struct {
	id          string
	tenantID    string
	catalogID   string
	name        string
	description string
	unitPrice   int64
	kind        Kind
	stock       Stock
	url         string
	updatedAt   time.Time
}

type Params struct {
	ID          string
	TenantID    string
	CatalogID   string
	Name        string
	Description string
	UnitPrice   int64
	Kind        Kind
	Stock       Stock
	URL         string
}

func NewProduct(p Params) (*Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, ErrEmptyID
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrEmptyName
	}
	if p.UnitPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if !p.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if err := checkStockKind(p.Kind, p.Stock); err != nil {
		return nil, err
	}
	return &Product{
		id:          p.ID,
		tenantID:    p.TenantID,
		catalogID:   p.CatalogID,
		name:        strings.TrimSpace(p.Name),
		description: p.Description,
		unitPrice:   p.UnitPrice,
		kind:        p.Kind,
		stock:       p.Stock,
		url:         p.URL,
	}, nil
}

func ReconstructProduct(p Params, updatedAt time.Time) *Product {
	return &Product{
		id:          p.ID,
		tenantID:    p.TenantID,
		catalogID:   p.CatalogID,
		name:        p.Name,
		description: p.Description,
		unitPrice:   p.UnitPrice,
		kind:        p.Kind,
		stock:       p.Stock,
		url:         p.URL,
		updatedAt:   updatedAt,
	}
}

// Credential pools only go with KindCredentialPool, and vice versa.
func checkStockKind(kind Kind, stock Stock) error {
	switch stock.Kind() {
	case StockUnlimited, StockCounted:
		if kind == KindCredentialPool {
			return ErrStockKindMismatch
		}
	case StockPool:
		if kind != KindCredentialPool {
			return ErrStockKindMismatch
		}
	default:
		return ErrInvalidStock
	}
	return nil
}

// TotalPrice is unit price times quantity.
func (p *Product) TotalPrice(qty int) (int64, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}
	if p.unitPrice > math.MaxInt64/int64(qty) {
		return 0, ErrPriceOverflow
	}
	return p.unitPrice * int64(qty), nil
}

// Allocate takes qty units from the product's stock in place.
func (p *Product) Allocate(qty int, now time.Time) (Allocation, error) {
	next, alloc, err := p.stock.Take(qty)
	if err != nil {
		return Allocation{}, err
	}
	p.stock = next
	p.updatedAt = now
	alloc.ProductID = p.id
	return alloc, nil
}

func (p *Product) Restock(creds []Credential, now time.Time) error {
	next, err := p.stock.Add(creds)
	if err != nil {
		return err
	}
	p.stock = next
	p.updatedAt = now
	return nil
}

func (p *Product) Clone() *Product {
	c := *p
	c.stock = Stock{kind: p.stock.kind, count: p.stock.count, pool: p.stock.Credentials()}
	return &c
}

func (p *Product) ToParams() Params {
	return Params{
		ID:          p.id,
		TenantID:    p.tenantID,
		CatalogID:   p.catalogID,
		Name:        p.name,
		Description: p.description,
		UnitPrice:   p.unitPrice,
		Kind:        p.kind,
		Stock:       p.stock,
		URL:         p.url,
	}
}

func (p *Product) ID() string           { return p.id }
func (p *Product) TenantID() string     { return p.tenantID }
func (p *Product) CatalogID() string    { return p.catalogID }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) UnitPrice() int64     { return p.unitPrice }
func (p *Product) Kind() Kind           { return p.kind }
func (p *Product) Stock() Stock         { return p.stock }
func (p *Product) URL() string          { return p.url }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

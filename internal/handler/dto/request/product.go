package request

import (
	"errors"

	"paylink-vending/internal/domain/product"
)

var ErrUnknownStockKind = errors.New("unknown stock kind")

type CredentialRequest struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
	Note   string `json:"note"`
}

type StockRequest struct {
	Kind        string              `json:"kind" binding:"required,oneof=unlimited counted pool"`
	Count       int                 `json:"count" binding:"min=0"`
	Credentials []CredentialRequest `json:"credentials"`
}

type UpsertProductRequest struct {
	CatalogID   string       `json:"catalog_id"`
	Name        string       `json:"name" binding:"required,max=100"`
	Description string       `json:"description" binding:"max=1000"`
	UnitPrice   int64        `json:"unit_price" binding:"required,min=1"`
	Kind        string       `json:"kind" binding:"required,oneof=link counted credential_pool"`
	URL         string       `json:"url" binding:"omitempty,url"`
	Stock       StockRequest `json:"stock" binding:"required"`
}

type RestockRequest struct {
	Credentials []CredentialRequest `json:"credentials" binding:"required,min=1"`
}

type AllocateRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (r *UpsertProductRequest) ToDomain(tenantID, productID string) (*product.Product, error) {
	kind, err := product.NewKind(r.Kind)
	if err != nil {
		return nil, err
	}
	stock, err := r.Stock.toDomain()
	if err != nil {
		return nil, err
	}
	return product.NewProduct(product.Params{
		ID:          productID,
		TenantID:    tenantID,
		CatalogID:   r.CatalogID,
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		Kind:        kind,
		Stock:       stock,
		URL:         r.URL,
	})
}

func (r *StockRequest) toDomain() (product.Stock, error) {
	switch r.Kind {
	case "unlimited":
		return product.Unlimited(), nil
	case "counted":
		return product.Counted(r.Count)
	case "pool":
		return product.Pool(toCredentials(r.Credentials))
	default:
		return product.Stock{}, ErrUnknownStockKind
	}
}

func (r *RestockRequest) ToDomain() []product.Credential {
	return toCredentials(r.Credentials)
}

func toCredentials(in []CredentialRequest) []product.Credential {
	out := make([]product.Credential, len(in))
	for i, c := range in {
		out[i] = product.Credential{Login: c.Login, Secret: c.Secret, Note: c.Note}
	}
	return out
}

package response

import (
	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/usecase/queries"
)

type ProductResponse struct {
	ID           string `json:"id"`
	CatalogID    string `json:"catalog_id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	UnitPrice    int64  `json:"unit_price"`
	Kind         string `json:"kind"`
	StockKind    string `json:"stock_kind"`
	StockCount   int    `json:"stock_count"`
	StockDisplay string `json:"stock_display"`
	URL          string `json:"url,omitempty"`
	UpdatedAt    int64  `json:"updated_at"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:           v.ID,
		CatalogID:    v.CatalogID,
		Name:         v.Name,
		Description:  v.Description,
		UnitPrice:    v.UnitPrice,
		Kind:         v.Kind,
		StockKind:    v.StockKind,
		StockCount:   v.StockCount,
		StockDisplay: v.StockDisplay,
		URL:          v.URL,
		UpdatedAt:    v.UpdatedAt.Unix(),
	}
}

func FromProductList(items []*queries.ProductView) []*ProductResponse {
	res := make([]*ProductResponse, len(items))
	for i, it := range items {
		res[i] = FromProductView(it)
	}
	return res
}

type RestockResponse struct {
	ProductID string `json:"product_id"`
	PoolSize  int    `json:"pool_size"`
}

type CredentialResponse struct {
	Login  string `json:"login,omitempty"`
	Secret string `json:"secret,omitempty"`
	Note   string `json:"note,omitempty"`
}

// AllocationResponse is returned to admins taking stock by hand; it does contain secrets.
type AllocationResponse struct {
	ProductID   string               `json:"product_id"`
	Quantity    int                  `json:"quantity"`
	Credentials []CredentialResponse `json:"credentials,omitempty"`
	Remaining   int                  `json:"remaining"`
	Unlimited   bool                 `json:"unlimited"`
}

func FromAllocation(a product.Allocation) *AllocationResponse {
	res := &AllocationResponse{
		ProductID: a.ProductID,
		Quantity:  a.Quantity,
		Remaining: a.Remaining,
		Unlimited: a.Unlimited,
	}
	for _, c := range a.Credentials {
		res.Credentials = append(res.Credentials, CredentialResponse{Login: c.Login, Secret: c.Secret, Note: c.Note})
	}
	return res
}

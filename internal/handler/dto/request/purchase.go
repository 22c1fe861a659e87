package request

import (
	"paylink-vending/internal/domain/purchase"
)

// PurchaseRequest mirrors the buyer's form. Quantity stays text so malformed input
// becomes an invalid_intent outcome rather than a bind error.
type PurchaseRequest struct {
	BuyerID   string `json:"buyer_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Link      string `json:"link" binding:"required"`
	Password  string `json:"password"`
	Quantity  string `json:"quantity" binding:"required"`
}

// ToDomain returns the validated intent. On error the returned intent still carries the
// submitted identifiers with a zero quantity, so it can never pass validation downstream.
func (r *PurchaseRequest) ToDomain(tenantID string) (purchase.Intent, error) {
	in, err := purchase.NewIntent(tenantID, r.BuyerID, r.ProductID, r.Link, r.Quantity, r.Password)
	if err != nil {
		return purchase.Intent{
			TenantID:  tenantID,
			BuyerID:   r.BuyerID,
			ProductID: r.ProductID,
			Link:      r.Link,
		}, err
	}
	return in, nil
}

package shared

//go:generate mockgen -source=dispatcher.go -destination=../../../tests/mock/shared/dispatcher.go -package=sharedmock

import (
	"context"

	"paylink-vending/internal/domain/product"
)

type Delivery struct {
	TenantID    string
	BuyerID     string
	ProductID   string
	ProductName string
	Quantity    int
	URL         string
	Credentials []product.Credential
}

type PurchaseLog struct {
	TenantID    string
	BuyerID     string
	ProductName string
	Quantity    int
	Total       int64
	SenderName  string
	SenderID    string
	SenderIcon  string
	Link        string
}

// Dispatcher hands goods and notices to the chat platform.
type Dispatcher interface {
	// DeliverGoods sends the purchase privately to the buyer. Failures are marked errs.ErrDispatchFailed.
	DeliverGoods(ctx context.Context, d Delivery) error
	GrantRole(ctx context.Context, tenantID, buyerID, roleID string) error
	PostPurchaseLog(ctx context.Context, l PurchaseLog) error
}

package queries

import (
	"time"

	"github.com/google/uuid"
)

// ProductView represents read-optimized product data. Credential contents are never exposed.
type ProductView struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	CatalogID    string    `json:"catalog_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	UnitPrice    int64     `json:"unit_price"`
	Kind         string    `json:"kind"`
	StockKind    string    `json:"stock_kind"`
	StockCount   int       `json:"stock_count"`
	StockDisplay string    `json:"stock_display"`
	URL          string    `json:"url,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LinkStatusView is the ledger state of one payment link.
type LinkStatusView struct {
	TenantID   string     `json:"tenant_id"`
	LinkID     string     `json:"link_id"`
	Consumed   bool       `json:"consumed"`
	Status     string     `json:"status"`
	LeaseUntil *time.Time `json:"lease_until,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// PurchaseRecordView represents one audited purchase.
type PurchaseRecordView struct {
	ID         uuid.UUID `json:"id"`
	TenantID   string    `json:"tenant_id"`
	ProductID  string    `json:"product_id"`
	BuyerID    string    `json:"buyer_id"`
	SenderName string    `json:"sender_name"`
	SenderID   string    `json:"sender_id"`
	LinkID     string    `json:"link_id"`
	Link       string    `json:"link"`
	Quantity   int       `json:"quantity"`
	Total      int64     `json:"total"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PurchaseRecordPage is one page of a newest-first record listing.
// NextCursor is empty on the last page.
type PurchaseRecordPage struct {
	Records    []*PurchaseRecordView `json:"records"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

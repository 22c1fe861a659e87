package shared

import (
	"context"
	"time"

	"paylink-vending/internal/domain/catalog"
	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/domain/session"

	"github.com/google/uuid"
)

// Not-found and conflict conditions are reported as infra.RepositoryError kinds.

type ProductRepository interface {
	FindByID(ctx context.Context, tenantID, productID string) (*product.Product, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*product.Product, error)
	// Save upserts the product, replacing its stock (including any credential pool).
	Save(ctx context.Context, p *product.Product) error
	// Allocate takes quantity units in one atomic step. Returns product.ErrInsufficientStock
	// without mutating anything when stock is short.
	Allocate(ctx context.Context, tenantID, productID string, quantity int) (product.Allocation, error)
	// AddCredentials appends to a credential pool and returns the new pool size.
	AddCredentials(ctx context.Context, tenantID, productID string, creds []product.Credential) (int, error)
}

type CatalogRepository interface {
	FindByID(ctx context.Context, tenantID, catalogID string) (*catalog.Catalog, error)
	Save(ctx context.Context, c *catalog.Catalog) error
}

type LedgerStatus string

const (
	LedgerProcessing LedgerStatus = "processing"
	LedgerConsumed   LedgerStatus = "consumed"
)

type LedgerEntry struct {
	TenantID   string
	LinkID     string
	Status     LedgerStatus
	LeaseUntil time.Time
	UpdatedAt  time.Time
}

// LedgerRepository is the durable set of consumed payment links per tenant.
type LedgerRepository interface {
	IsConsumed(ctx context.Context, tenantID, linkID string) (bool, error)
	// Entry returns KindNotFound when the link has never been seen.
	Entry(ctx context.Context, tenantID, linkID string) (*LedgerEntry, error)
	// Begin atomically records that this caller is claiming the link until leaseUntil.
	// It fails with errs.ErrAlreadyConsumed when the link is consumed and with
	// errs.ErrClaimInProgress while another unexpired lease is held.
	Begin(ctx context.Context, tenantID, linkID string, now, leaseUntil time.Time) error
	// Release drops a processing lease. Consumed links are left untouched.
	Release(ctx context.Context, tenantID, linkID string) error
	// MarkConsumed is idempotent.
	MarkConsumed(ctx context.Context, tenantID, linkID string, now time.Time) error
}

type SessionRepository interface {
	Get(ctx context.Context, tenantID string) (*session.Sealed, error)
	Put(ctx context.Context, s session.Sealed) error
}

// RecordCursor is the last record of a previous page. Listing resumes strictly after it
// in (created_at, id) descending order.
type RecordCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type PurchaseRepository interface {
	Append(ctx context.Context, r purchase.Record) error
	// ListByStatus returns newest first, starting after the cursor when one is given.
	ListByStatus(ctx context.Context, tenantID string, status purchase.RecordStatus, after *RecordCursor, limit int) ([]purchase.Record, error)
}

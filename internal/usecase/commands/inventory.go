package commands

//go:generate mockgen -source=inventory.go -destination=../../../tests/mock/commands/inventory.go -package=commandsmock

import (
	"context"
	"log/slog"

	"paylink-vending/internal/domain/catalog"
	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"
)

// InventoryCommands are the operator-facing stock operations.
type InventoryCommands interface {
	SaveProduct(ctx context.Context, p *product.Product) error
	Restock(ctx context.Context, tenantID, productID string, creds []product.Credential) (int, error)
	Allocate(ctx context.Context, tenantID, productID string, quantity int) (product.Allocation, error)
	SaveCatalog(ctx context.Context, c *catalog.Catalog) error
}

type inventoryCommandsImpl struct {
	products shared.ProductRepository
	catalogs shared.CatalogRepository
	logger   *slog.Logger
}

func NewInventoryCommands(products shared.ProductRepository, catalogs shared.CatalogRepository, logger *slog.Logger) InventoryCommands {
	return &inventoryCommandsImpl{
		products: products,
		catalogs: catalogs,
		logger:   logger,
	}
}

func (i *inventoryCommandsImpl) SaveProduct(ctx context.Context, p *product.Product) error {
	if p.CatalogID() != "" {
		if _, err := i.catalogs.FindByID(ctx, p.TenantID(), p.CatalogID()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrCatalogNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	if err := i.products.Save(ctx, p); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	i.logger.Info("product saved",
		slog.String("tenant", p.TenantID()),
		slog.String("product_id", p.ID()),
		slog.String("stock", p.Stock().Display()),
	)
	return nil
}

func (i *inventoryCommandsImpl) Restock(ctx context.Context, tenantID, productID string, creds []product.Credential) (int, error) {
	if len(creds) == 0 {
		return 0, errs.Mark(product.ErrEmptyCredential, errs.ErrInvalidIntent)
	}
	for _, c := range creds {
		if c.IsZero() {
			return 0, errs.Mark(product.ErrEmptyCredential, errs.ErrInvalidIntent)
		}
	}

	size, err := i.products.AddCredentials(ctx, tenantID, productID, creds)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return 0, errs.Mark(err, errs.ErrProductNotFound)
		case errs.Is(err, product.ErrStockKindMismatch):
			return 0, errs.Mark(err, errs.ErrInvalidIntent)
		default:
			return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	i.logger.Info("credential pool restocked",
		slog.String("tenant", tenantID),
		slog.String("product_id", productID),
		slog.Int("added", len(creds)),
		slog.Int("pool_size", size),
	)
	return size, nil
}

func (i *inventoryCommandsImpl) Allocate(ctx context.Context, tenantID, productID string, quantity int) (product.Allocation, error) {
	if quantity <= 0 {
		return product.Allocation{}, errs.Mark(product.ErrInvalidQuantity, errs.ErrInvalidIntent)
	}
	alloc, err := i.products.Allocate(ctx, tenantID, productID, quantity)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return product.Allocation{}, errs.Mark(err, errs.ErrProductNotFound)
		case errs.IsAny(err, product.ErrInsufficientStock, errs.ErrInsufficientStock):
			return product.Allocation{}, errs.Mark(err, errs.ErrInsufficientStock)
		default:
			return product.Allocation{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return alloc, nil
}

func (i *inventoryCommandsImpl) SaveCatalog(ctx context.Context, c *catalog.Catalog) error {
	if err := i.catalogs.Save(ctx, c); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

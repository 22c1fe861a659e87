package repository

import (
	"context"
	"sort"

	"paylink-vending/internal/domain/product"
	"paylink-vending/internal/infra"
	"paylink-vending/internal/infra/db"
	"paylink-vending/internal/infra/uow"
	"paylink-vending/internal/pkg/clock"
	"paylink-vending/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	stockKindUnlimited = "unlimited"
	stockKindCounted   = "counted"
	stockKindPool      = "pool"
)

type ProductRepository struct {
	uow   uow.UnitOfWork
	clock clock.Clock
}

func NewProductRepository(u uow.UnitOfWork, clk clock.Clock) *ProductRepository {
	return &ProductRepository{uow: u, clock: clk}
}

type productRow struct {
	TenantID    string             `db:"tenant_id"`
	ID          string             `db:"id"`
	CatalogID   string             `db:"catalog_id"`
	Name        string             `db:"name"`
	Description string             `db:"description"`
	UnitPrice   int64              `db:"unit_price"`
	Kind        string             `db:"kind"`
	StockKind   string             `db:"stock_kind"`
	StockCount  int                `db:"stock_count"`
	URL         string             `db:"url"`
	UpdatedAt   pgtype.Timestamptz `db:"updated_at"`
}

type credentialRow struct {
	Seq    int64  `db:"seq"`
	Login  string `db:"login"`
	Secret string `db:"secret"`
	Note   string `db:"note"`
}

const selectProductSQL = `
SELECT tenant_id, id, catalog_id, name, description, unit_price, kind, stock_kind, stock_count, url, updated_at
FROM products`

func (r *ProductRepository) FindByID(ctx context.Context, tenantID, productID string) (*product.Product, error) {
	var out *product.Product
	err := r.uow.WithinReadOnly(ctx, func(ctx context.Context, tx db.DBTX) error {
		rows, err := tx.Query(ctx, selectProductSQL+` WHERE tenant_id = $1 AND id = $2`, tenantID, productID)
		if err != nil {
			return infra.WrapRepoErr("failed to query product", err)
		}
		row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
		if err != nil {
			if pgconv.IsNoRows(err) {
				return infra.WrapRepoErr("product not found", err, infra.KindNotFound)
			}
			return infra.WrapRepoErr("failed to scan product", err)
		}
		out, err = r.toDomain(ctx, tx, row)
		return err
	})
	return out, err
}

func (r *ProductRepository) ListByTenant(ctx context.Context, tenantID string) ([]*product.Product, error) {
	var out []*product.Product
	err := r.uow.WithinReadOnly(ctx, func(ctx context.Context, tx db.DBTX) error {
		rows, err := tx.Query(ctx, selectProductSQL+` WHERE tenant_id = $1 ORDER BY id`, tenantID)
		if err != nil {
			return infra.WrapRepoErr("failed to query products", err)
		}
		list, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
		if err != nil {
			return infra.WrapRepoErr("failed to scan products", err)
		}
		out = make([]*product.Product, 0, len(list))
		for _, row := range list {
			p, err := r.toDomain(ctx, tx, row)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	now := r.clock.Now()
	stock := p.Stock()

	return r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.Exec(ctx, `
INSERT INTO products (tenant_id, id, catalog_id, name, description, unit_price, kind, stock_kind, stock_count, url, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (tenant_id, id) DO UPDATE SET
    catalog_id = EXCLUDED.catalog_id,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    unit_price = EXCLUDED.unit_price,
    kind = EXCLUDED.kind,
    stock_kind = EXCLUDED.stock_kind,
    stock_count = EXCLUDED.stock_count,
    url = EXCLUDED.url,
    updated_at = EXCLUDED.updated_at`,
			p.TenantID(), p.ID(), p.CatalogID(), p.Name(), p.Description(), p.UnitPrice(),
			p.Kind().String(), stockKindColumn(stock), countColumn(stock), p.URL(), pgconv.TimeToPgtype(now),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to upsert product", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM product_credentials WHERE tenant_id = $1 AND product_id = $2`, p.TenantID(), p.ID()); err != nil {
			return infra.WrapRepoErr("failed to clear credential pool", err)
		}
		if stock.Kind() == product.StockPool {
			if err := insertCredentials(ctx, tx, p.TenantID(), p.ID(), stock.Credentials()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Allocate locks the product row for the duration of one short transaction.
func (r *ProductRepository) Allocate(ctx context.Context, tenantID, productID string, quantity int) (product.Allocation, error) {
	if quantity <= 0 {
		return product.Allocation{}, product.ErrInvalidQuantity
	}
	now := r.clock.Now()
	var alloc product.Allocation

	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		alloc = product.Allocation{ProductID: productID, Quantity: quantity}

		stockKind, err := lockProduct(ctx, tx, tenantID, productID)
		if err != nil {
			return err
		}

		switch stockKind {
		case stockKindUnlimited:
			alloc.Unlimited = true
			return nil

		case stockKindCounted:
			err := tx.QueryRow(ctx, `
UPDATE products SET stock_count = stock_count - $3, updated_at = $4
WHERE tenant_id = $1 AND id = $2 AND stock_count >= $3
RETURNING stock_count`, tenantID, productID, quantity, pgconv.TimeToPgtype(now)).Scan(&alloc.Remaining)
			if err != nil {
				if pgconv.IsNoRows(err) {
					return product.ErrInsufficientStock
				}
				return infra.WrapRepoErr("failed to decrement stock", err)
			}
			return nil

		case stockKindPool:
			var available int
			if err := tx.QueryRow(ctx, `SELECT count(*) FROM product_credentials WHERE tenant_id = $1 AND product_id = $2`,
				tenantID, productID).Scan(&available); err != nil {
				return infra.WrapRepoErr("failed to count credential pool", err)
			}
			if available < quantity {
				return product.ErrInsufficientStock
			}

			rows, err := tx.Query(ctx, `
DELETE FROM product_credentials
WHERE seq IN (
    SELECT seq FROM product_credentials
    WHERE tenant_id = $1 AND product_id = $2
    ORDER BY seq
    LIMIT $3
)
RETURNING seq, login, secret, note`, tenantID, productID, quantity)
			if err != nil {
				return infra.WrapRepoErr("failed to take credentials", err)
			}
			taken, err := pgx.CollectRows(rows, pgx.RowToStructByName[credentialRow])
			if err != nil {
				return infra.WrapRepoErr("failed to scan taken credentials", err)
			}
			sort.Slice(taken, func(i, j int) bool { return taken[i].Seq < taken[j].Seq })

			alloc.Credentials = make([]product.Credential, len(taken))
			for i, c := range taken {
				alloc.Credentials[i] = product.Credential{Login: c.Login, Secret: c.Secret, Note: c.Note}
			}
			alloc.Remaining = available - len(taken)

			if _, err := tx.Exec(ctx, `UPDATE products SET stock_count = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
				tenantID, productID, alloc.Remaining, pgconv.TimeToPgtype(now)); err != nil {
				return infra.WrapRepoErr("failed to update pool size", err)
			}
			return nil

		default:
			return product.ErrInvalidStock
		}
	})
	if err != nil {
		return product.Allocation{}, err
	}
	return alloc, nil
}

func (r *ProductRepository) AddCredentials(ctx context.Context, tenantID, productID string, creds []product.Credential) (int, error) {
	for _, c := range creds {
		if c.IsZero() {
			return 0, product.ErrEmptyCredential
		}
	}
	now := r.clock.Now()
	var size int

	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		stockKind, err := lockProduct(ctx, tx, tenantID, productID)
		if err != nil {
			return err
		}
		if stockKind != stockKindPool {
			return product.ErrStockKindMismatch
		}
		if err := insertCredentials(ctx, tx, tenantID, productID, creds); err != nil {
			return err
		}
		err = tx.QueryRow(ctx, `
UPDATE products SET stock_count = (
    SELECT count(*) FROM product_credentials WHERE tenant_id = $1 AND product_id = $2
), updated_at = $3
WHERE tenant_id = $1 AND id = $2
RETURNING stock_count`, tenantID, productID, pgconv.TimeToPgtype(now)).Scan(&size)
		if err != nil {
			return infra.WrapRepoErr("failed to update pool size", err)
		}
		return nil
	})
	return size, err
}

func lockProduct(ctx context.Context, tx db.DBTX, tenantID, productID string) (string, error) {
	var stockKind string
	err := tx.QueryRow(ctx, `SELECT stock_kind FROM products WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, productID).Scan(&stockKind)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to lock product", err)
	}
	return stockKind, nil
}

func insertCredentials(ctx context.Context, tx db.DBTX, tenantID, productID string, creds []product.Credential) error {
	for _, c := range creds {
		if _, err := tx.Exec(ctx, `
INSERT INTO product_credentials (tenant_id, product_id, login, secret, note) VALUES ($1, $2, $3, $4, $5)`,
			tenantID, productID, c.Login, c.Secret, c.Note); err != nil {
			return infra.WrapRepoErr("failed to insert credential", err)
		}
	}
	return nil
}

func (r *ProductRepository) toDomain(ctx context.Context, tx db.DBTX, row productRow) (*product.Product, error) {
	var (
		stock product.Stock
		err   error
	)
	switch row.StockKind {
	case stockKindUnlimited:
		stock = product.Unlimited()
	case stockKindCounted:
		stock, err = product.Counted(row.StockCount)
	case stockKindPool:
		var creds []product.Credential
		creds, err = loadCredentials(ctx, tx, row.TenantID, row.ID)
		if err == nil {
			stock, err = product.Pool(creds)
		}
	default:
		err = product.ErrInvalidStock
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load product stock", err)
	}

	kind, err := product.NewKind(row.Kind)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product kind in storage", err)
	}

	return product.ReconstructProduct(product.Params{
		ID:          row.ID,
		TenantID:    row.TenantID,
		CatalogID:   row.CatalogID,
		Name:        row.Name,
		Description: row.Description,
		UnitPrice:   row.UnitPrice,
		Kind:        kind,
		Stock:       stock,
		URL:         row.URL,
	}, pgconv.TimeFromPgtype(row.UpdatedAt)), nil
}

func loadCredentials(ctx context.Context, tx db.DBTX, tenantID, productID string) ([]product.Credential, error) {
	rows, err := tx.Query(ctx, `
SELECT seq, login, secret, note FROM product_credentials
WHERE tenant_id = $1 AND product_id = $2
ORDER BY seq`, tenantID, productID)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[credentialRow])
	if err != nil {
		return nil, err
	}
	creds := make([]product.Credential, len(list))
	for i, c := range list {
		creds[i] = product.Credential{Login: c.Login, Secret: c.Secret, Note: c.Note}
	}
	return creds, nil
}

func stockKindColumn(s product.Stock) string {
	switch s.Kind() {
	case product.StockUnlimited:
		return stockKindUnlimited
	case product.StockPool:
		return stockKindPool
	default:
		return stockKindCounted
	}
}

func countColumn(s product.Stock) int {
	if s.IsUnlimited() {
		return 0
	}
	return s.Count()
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/core/port"
)

var _ port.ProductCatalog = ProductsRepository{}

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

const productColumns = `
	id, name, slug, description, price, currency,
	category, image_url, stock, sku, is_active, created_at, updated_at`

func (r ProductsRepository) ProductByName(
	ctx context.Context, name string,
) (domain.CatalogProduct, error) {
	const op = "ProductsRepository.ProductByName"

	query := `SELECT` + productColumns + `
		FROM products WHERE name = $1 LIMIT 1;`

	p, err := r.scanProduct(r.sqldb.QueryRowContext(ctx, query, name))
	if err != nil {
		return domain.CatalogProduct{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) ProductBySlug(
	ctx context.Context, slug string,
) (domain.CatalogProduct, error) {
	const op = "ProductsRepository.ProductBySlug"

	query := `SELECT` + productColumns + `
		FROM products WHERE slug = $1 LIMIT 1;`

	p, err := r.scanProduct(r.sqldb.QueryRowContext(ctx, query, slug))
	if err != nil {
		return domain.CatalogProduct{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) SlugTaken(
	ctx context.Context, slug string,
) (bool, error) {
	const op = "ProductsRepository.SlugTaken"

	query := `SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1);`

	var taken bool
	err := r.sqldb.QueryRowContext(ctx, query, slug).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return taken, nil
}

func (r ProductsRepository) CreateProduct(
	ctx context.Context, p domain.ExtractedProduct,
) (int64, error) {
	const op = "ProductsRepository.CreateProduct"

	query := `
		INSERT INTO products (
			name, slug, description, price, currency,
			category, image_url, stock, sku, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;`

	var id int64
	err := r.sqldb.QueryRowContext(ctx, query,
		p.Name, p.Slug, p.Description, p.Price, p.Currency,
		p.Category, p.ImageURL, p.Stock, p.SKU, p.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateProduct refreshes every product column except the slug, which
// only changes through UpdateProductSlug.
func (r ProductsRepository) UpdateProduct(
	ctx context.Context, id int64, p domain.ExtractedProduct,
) error {
	const op = "ProductsRepository.UpdateProduct"

	query := `
		UPDATE products SET
			name = $2,
			description = $3,
			price = $4,
			currency = $5,
			category = $6,
			image_url = $7,
			stock = $8,
			sku = $9,
			is_active = $10,
			updated_at = now()
		WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query,
		id, p.Name, p.Description, p.Price, p.Currency,
		p.Category, p.ImageURL, p.Stock, p.SKU, p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return r.requireRow(res, op)
}

func (r ProductsRepository) UpdateProductSlug(
	ctx context.Context, id int64, slug string,
) error {
	const op = "ProductsRepository.UpdateProductSlug"

	query := `UPDATE products SET slug = $2, updated_at = now() WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query, id, slug)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return r.requireRow(res, op)
}

func (r ProductsRepository) requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) scanProduct(row *sql.Row) (domain.CatalogProduct, error) {
	var p domain.CatalogProduct
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Currency,
		&p.Category, &p.ImageURL, &p.Stock, &p.SKU, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CatalogProduct{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.CatalogProduct{}, err
	}
	return p, nil
}

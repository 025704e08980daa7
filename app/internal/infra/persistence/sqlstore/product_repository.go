package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domproduct "example.com/rocketshoes/app/internal/domain/product"
)

// ProductRepository reads the catalog from a products table.
type ProductRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewProductRepository(db *sql.DB, dialect Dialect) *ProductRepository {
	return &ProductRepository{db: db, dialect: dialect}
}

func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`
        SELECT id, title, price, image
        FROM products WHERE id = ?
    `), id)

	var p domproduct.Product
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %w", domproduct.ErrLookup, err)
	}
	return &p, nil
}

type StockRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewStockRepository(db *sql.DB, dialect Dialect) *StockRepository {
	return &StockRepository{db: db, dialect: dialect}
}

func (r *StockRepository) GetStock(ctx context.Context, id int64) (*domproduct.Stock, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`
        SELECT product_id, amount
        FROM stock WHERE product_id = ?
    `), id)

	var s domproduct.Stock
	if err := row.Scan(&s.ID, &s.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %w", domproduct.ErrLookup, err)
	}
	return &s, nil
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	domproduct "example.com/rocketshoes/app/internal/domain/product"
)

func TestProductRepository_GetProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ?`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "image"}).
			AddRow(int64(1), "Tênis de Caminhada", 179.9, "https://img/1.jpg"))

	p, err := NewProductRepository(db, MySQL).GetProduct(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, &domproduct.Product{ID: 1, Title: "Tênis de Caminhada", Price: 179.9, Image: "https://img/1.jpg"}, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err = NewProductRepository(db, Postgres).GetProduct(context.Background(), 9)

	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestProductRepository_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("too many connections")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products`)).WillReturnError(boom)

	_, err = NewProductRepository(db, MySQL).GetProduct(context.Background(), 1)

	require.ErrorIs(t, err, domproduct.ErrLookup)
	require.ErrorIs(t, err, boom)
}

func TestStockRepository_GetStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM stock WHERE product_id = ?`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "amount"}).AddRow(int64(2), int64(5)))

	s, err := NewStockRepository(db, MySQL).GetStock(context.Background(), 2)

	require.NoError(t, err)
	require.Equal(t, &domproduct.Stock{ID: 2, Amount: 5}, s)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepository_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM stock`)).WillReturnError(sql.ErrNoRows)

	_, err = NewStockRepository(db, MySQL).GetStock(context.Background(), 2)

	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

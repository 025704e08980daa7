package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `SELECT v FROM t WHERE a = ? AND b = ?`

	require.Equal(t, q, MySQL.Rebind(q))
	require.Equal(t, `SELECT v FROM t WHERE a = $1 AND b = $2`, Postgres.Rebind(q))
}

func TestDialectFor(t *testing.T) {
	d, ok := DialectFor("postgres")
	require.True(t, ok)
	require.Equal(t, Postgres, d)

	_, ok = DialectFor("sqlite")
	require.False(t, ok)
}

func TestKVStore_GetMissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT v FROM storefront_kv WHERE k = ?`)).
		WithArgs("@RocketShoes:cart").
		WillReturnError(sql.ErrNoRows)

	v, ok, err := NewKVStore(db, MySQL).Get(context.Background(), "@RocketShoes:cart")

	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetExistingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT v FROM storefront_kv WHERE k = $1`)).
		WithArgs("cart").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(`{"version":2,"items":[]}`))

	v, ok, err := NewKVStore(db, Postgres).Get(context.Background(), "cart")

	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"version":2,"items":[]}`, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT v FROM storefront_kv`)).WillReturnError(boom)

	_, _, err = NewKVStore(db, MySQL).Get(context.Background(), "cart")

	require.ErrorIs(t, err, boom)
}

func TestKVStore_SetUpserts(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
	}{
		{
			name:    "MySQL",
			dialect: MySQL,
			query:   `INSERT INTO storefront_kv (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`,
		},
		{
			name:    "Postgres",
			dialect: Postgres,
			query:   `INSERT INTO storefront_kv (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs("cart", "[]").
				WillReturnResult(sqlmock.NewResult(1, 1))

			require.NoError(t, NewKVStore(db, tt.dialect).Set(context.Background(), "cart", "[]"))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVStore_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS storefront_kv`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewKVStore(db, MySQL).EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

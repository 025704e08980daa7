package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
)

// Querier is satisfied by *pgx.Conn and *pgxpool.Pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Storage struct {
	db Querier
}

func NewStorage(db Querier) *Storage {
	return &Storage{db: db}
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS storefront_kv (
            k TEXT PRIMARY KEY,
            v TEXT NOT NULL
        )
    `)
	return pkgerrors.Wrap(err, "create storefront_kv")
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT v FROM storefront_kv WHERE k = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrapf(err, "select %q", key)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO storefront_kv (k, v) VALUES ($1, $2)
        ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v
    `, key, value)
	return pkgerrors.Wrapf(err, "upsert %q", key)
}

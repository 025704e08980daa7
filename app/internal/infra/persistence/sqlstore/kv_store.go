package sqlstore

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS storefront_kv (
    k VARCHAR(191) NOT NULL PRIMARY KEY,
    v TEXT NOT NULL
)`

// KVStore implements persistence.Storage on a single SQL table.
type KVStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewKVStore(db *sql.DB, dialect Dialect) *KVStore {
	return &KVStore{db: db, dialect: dialect}
}

func (s *KVStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createKVTable)
	return errors.Wrap(err, "create storefront_kv")
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.Rebind(`SELECT v FROM storefront_kv WHERE k = ?`), key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "select %q", key)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(s.dialect.upsert), key, value)
	return errors.Wrapf(err, "upsert %q", key)
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

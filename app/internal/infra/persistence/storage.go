package persistence

import (
	"context"

	"github.com/pkg/errors"

	domcart "example.com/rocketshoes/app/internal/domain/cart"
)

// DefaultCartKey is the key older storefront clients wrote their cart under.
const DefaultCartKey = "@RocketShoes:cart"

// Storage is a durable string key-value store.
type Storage interface {
	// Get reports ok=false when the key was never written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type SnapshotRepository struct {
	storage Storage
	key     string
}

func NewSnapshotRepository(storage Storage, key string) *SnapshotRepository {
	if key == "" {
		key = DefaultCartKey
	}
	return &SnapshotRepository{storage: storage, key: key}
}

func (r *SnapshotRepository) Load(ctx context.Context) (domcart.Cart, error) {
	raw, ok, err := r.storage.Get(ctx, r.key)
	if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %q", r.key)
	}
	if !ok {
		return domcart.Cart{}, nil
	}
	return domcart.DecodeSnapshot(raw)
}

func (r *SnapshotRepository) Save(ctx context.Context, c domcart.Cart) error {
	raw, err := domcart.EncodeSnapshot(c)
	if err != nil {
		return err
	}
	return errors.Wrapf(r.storage.Set(ctx, r.key, raw), "write snapshot %q", r.key)
}

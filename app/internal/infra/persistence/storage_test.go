package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	domcart "example.com/rocketshoes/app/internal/domain/cart"
	domproduct "example.com/rocketshoes/app/internal/domain/product"
	"example.com/rocketshoes/app/internal/infra/persistence/memory"
)

type failingStorage struct {
	err error
}

func (f failingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, f.err
}

func (f failingStorage) Set(ctx context.Context, key, value string) error {
	return f.err
}

func TestSnapshotRepository_EmptyStorage(t *testing.T) {
	repo := NewSnapshotRepository(memory.NewStorage(), "")

	c, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, c)
	require.Len(t, c, 0)
}

func TestSnapshotRepository_SaveThenLoad(t *testing.T) {
	storage := memory.NewStorage()
	repo := NewSnapshotRepository(storage, "")
	in := domcart.Cart{
		{Product: domproduct.Product{ID: 1, Title: "Tênis", Price: 179.9}, Amount: 3},
		{Product: domproduct.Product{ID: 2, Title: "Bota", Price: 99.5}, Amount: 1},
	}

	require.NoError(t, repo.Save(context.Background(), in))

	raw, ok, err := storage.Get(context.Background(), DefaultCartKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, raw, `"version":2`)

	out, err := repo.Load(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("load(save(cart)) mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotRepository_CustomKey(t *testing.T) {
	storage := memory.NewStorage()
	repo := NewSnapshotRepository(storage, "kiosk-7")

	require.NoError(t, repo.Save(context.Background(), domcart.Cart{}))

	_, ok, _ := storage.Get(context.Background(), "kiosk-7")
	require.True(t, ok)
	_, ok, _ = storage.Get(context.Background(), DefaultCartKey)
	require.False(t, ok)
}

func TestSnapshotRepository_LoadsLegacyArray(t *testing.T) {
	storage := memory.NewStorage()
	require.NoError(t, storage.Set(context.Background(), DefaultCartKey, `[{"id":4,"title":"Tênis","price":10,"image":"x","amount":2}]`))

	c, err := NewSnapshotRepository(storage, "").Load(context.Background())

	require.NoError(t, err)
	require.Len(t, c, 1)
	require.Equal(t, int64(4), c[0].ID)
	require.Equal(t, int64(2), c[0].Amount)
}

func TestSnapshotRepository_CorruptSnapshot(t *testing.T) {
	storage := memory.NewStorage()
	require.NoError(t, storage.Set(context.Background(), DefaultCartKey, `{"version":2,"items":[{"id":1,"amount":0}]}`))

	_, err := NewSnapshotRepository(storage, "").Load(context.Background())

	require.ErrorIs(t, err, domcart.ErrCorruptSnapshot)
}

func TestSnapshotRepository_StorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewSnapshotRepository(failingStorage{err: boom}, "")

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, boom)

	err = repo.Save(context.Background(), domcart.Cart{})
	require.ErrorIs(t, err, boom)
}

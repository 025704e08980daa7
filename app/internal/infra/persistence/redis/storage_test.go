package redis

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestNewClient_ParsesURL(t *testing.T) {
	client := NewClient("redis://:secret@cache.internal:6380/2")
	defer client.Close()

	opts := client.Options()
	require.Equal(t, "cache.internal:6380", opts.Addr)
	require.Equal(t, "secret", opts.Password)
	require.Equal(t, 2, opts.DB)
}

func TestNewClient_BareAddress(t *testing.T) {
	client := NewClient("redis-cart:6379")
	defer client.Close()

	require.Equal(t, "redis-cart:6379", client.Options().Addr)
}

func TestStorage_UnreachableServer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	client := NewClient("127.0.0.1:1")
	defer client.Close()
	s := NewStorage(client, "", logger)

	_, _, err := s.Get(context.Background(), "cart")
	require.Error(t, err)
	require.Error(t, s.Set(context.Background(), "cart", "[]"))

	err = s.WaitReady(context.Background(), time.Second)
	require.Error(t, err)
	require.NotEmpty(t, hook.AllEntries())
}

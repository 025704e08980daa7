package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "STORAGE_BACKEND", "STORAGE_KEY", "CATALOG_BACKEND", "LOOKUP_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "memory", cfg.StorageBackend)
	require.Equal(t, "@RocketShoes:cart", cfg.StorageKey)
	require.Equal(t, "http", cfg.CatalogBackend)
	require.Equal(t, time.Duration(0), cfg.LookupTimeout)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("LOOKUP_TIMEOUT", "750ms")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	cfg := Load()

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "redis", cfg.StorageBackend)
	require.Equal(t, 750*time.Millisecond, cfg.LookupTimeout)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

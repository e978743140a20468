package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("QUIZDECK_DATA_DIR", "")
	t.Setenv("QUIZDECK_DB", "")
	t.Setenv("QUIZDECK_STORE", "")
	t.Setenv("QUIZDECK_CATALOG", "")
	t.Setenv("QUIZDECK_HALF_LIFE_HOURS", "")
	t.Setenv("QUIZDECK_SEED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "quizdeck"), cfg.DataDir)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, filepath.Join(dir, "quizdeck", "quizdeck.db"), cfg.ResolvedDBPath())
	assert.Equal(t, filepath.Join(dir, "quizdeck", "catalog", "topics.yaml"), cfg.CatalogPath)
	assert.InDelta(t, 24.0, cfg.HalfLifeHours, 1e-9)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("QUIZDECK_DB", "/tmp/custom.db")
	t.Setenv("QUIZDECK_STORE", "redis")
	t.Setenv("QUIZDECK_REDIS_ADDR", "cache:6379")
	t.Setenv("QUIZDECK_HALF_LIFE_HOURS", "12.5")
	t.Setenv("QUIZDECK_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.ResolvedDBPath())
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.InDelta(t, 12.5, cfg.HalfLifeHours, 1e-9)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad half-life", "QUIZDECK_HALF_LIFE_HOURS", "soon"},
		{"zero half-life", "QUIZDECK_HALF_LIFE_HOURS", "0"},
		{"bad seed", "QUIZDECK_SEED", "-1"},
		{"unknown store", "QUIZDECK_STORE", "etcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_DATA_HOME", t.TempDir())
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

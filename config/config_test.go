package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("BASE_URL", "http://catalog.local/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://catalog.local/admin/image-proxy", cfg.ImageProxyURL)
	assert.Equal(t, 20*time.Second, cfg.ImageFetchTimeout)
	assert.Equal(t, "disk", cfg.ImageCache)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsUnknownCache(t *testing.T) {
	t.Setenv("IMAGE_CACHE", "memcached")
	_, err := Load()
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@db/catalog"}
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/catalog", dsn)

	cfg = &Config{DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "secret", DBName: "catalog", DBSSLMode: "disable"}
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=catalog sslmode=disable", dsn)

	_, err = (&Config{}).DSN()
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())

	var missing *Config
	assert.False(t, missing.IsProduction())
}

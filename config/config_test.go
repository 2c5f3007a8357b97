package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "vgdirect")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "vgdirect")
	t.Setenv("JWT_SECRET", "test-signing-secret")
	t.Setenv("RAWG_API_KEY", "test-api-key")
}

// unsetEnv removes a variable for the duration of the test. t.Setenv alone
// cannot express "absent", only "empty".
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if old, ok := os.LookupEnv(key); ok {
		t.Cleanup(func() { os.Setenv(key, old) })
	}
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_APP_POOL_SIZE", "DB_SYNC_POOL_SIZE",
		"JWT_TOKEN_DURATION", "BCRYPT_COST", "PORT",
		"RAWG_BASE_URL", "CATALOG_SYNC_ENABLED", "CATALOG_SYNC_INTERVAL", "CATALOG_SYNC_PAGE_SIZE",
	} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.DBPools.AppPool.Host)
	require.Equal(t, 5432, cfg.DBPools.AppPool.Port)
	require.Equal(t, 10, cfg.DBPools.AppPool.MaxSize)
	require.Equal(t, 2, cfg.DBPools.SyncPool.MaxSize)

	require.Equal(t, "test-signing-secret", cfg.Auth.JWTSecret)
	require.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	require.Equal(t, 10, cfg.Auth.BcryptCost)

	require.Equal(t, "10000", cfg.Server.Port)
	require.Equal(t, "https://api.rawg.io/api", cfg.Catalog.BaseURL)
	require.True(t, cfg.Catalog.SyncEnabled)
	require.Equal(t, 6*time.Hour, cfg.Catalog.SyncInterval)
	require.Equal(t, 15, cfg.Catalog.SyncPageSize)
}

func TestLoadConfigReadsOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_APP_POOL_SIZE", "25")
	t.Setenv("JWT_TOKEN_DURATION", "2h")
	t.Setenv("PORT", "8080")
	t.Setenv("CATALOG_SYNC_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "db.internal", cfg.DBPools.AppPool.Host)
	require.Equal(t, 5433, cfg.DBPools.AppPool.Port)
	require.Equal(t, 25, cfg.DBPools.AppPool.MaxSize)
	require.Equal(t, 2*time.Hour, cfg.Auth.TokenDuration)
	require.Equal(t, "8080", cfg.Server.Port)
	require.False(t, cfg.Catalog.SyncEnabled)
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	setRequiredEnv(t)
	unsetEnv(t, "DB_USER")
	unsetEnv(t, "JWT_SECRET")
	t.Setenv("DB_PORT", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_USER")
	require.Contains(t, err.Error(), "JWT_SECRET")
	require.Contains(t, err.Error(), "DB_PORT")
}

func TestLoadConfigRejectsShortTokenDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_TOKEN_DURATION", "5m")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_TOKEN_DURATION")
}

func TestLoadConfigRejectsNonPositiveSyncInterval(t *testing.T) {
	for _, interval := range []string{"0s", "-1h"} {
		t.Run(interval, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("CATALOG_SYNC_INTERVAL", interval)

			_, err := LoadConfig()
			require.Error(t, err)
			require.Contains(t, err.Error(), "CATALOG_SYNC_INTERVAL")
		})
	}
}

func TestLoadConfigClampsPoolSizes(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_APP_POOL_SIZE", "1000")

	_, err := LoadConfig()
	// Clamping is reported as a configuration error rather than silently applied.
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_APP_POOL_SIZE")
}

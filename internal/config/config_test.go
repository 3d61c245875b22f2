package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var allKeys = []string{
	"PORT", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DATABASE", "DATABASE_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL", "WORKER_COUNT",
	"WORKER_QUEUE", "JWT_SECRET", "TOKEN_TTL", "REQUIRE_TOKEN", "BCRYPT_COST", "LOG_LEVEL",
}

// clearEnv 把所有設定清成空字串，並停用 .env
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	loadDotenv = func() error { return nil }
	t.Cleanup(func() { loadDotenv = func() error { return godotenv.Load() } })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, DriverMongo, cfg.StoreDriver)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "postboard", cfg.MongoDatabase)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, 10*time.Minute, cfg.CacheTTL)
	require.Equal(t, 1, cfg.WorkerCount)
	require.Equal(t, 256, cfg.WorkerQueue)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	require.False(t, cfg.RequireToken)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("WORKER_QUEUE", "16")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("REQUIRE_TOKEN", "true")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, 16, cfg.WorkerQueue)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.True(t, cfg.RequireToken)
	require.Equal(t, 4, cfg.BcryptCost)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad driver":           {"STORE_DRIVER": "mysql"},
		"postgres without url": {"STORE_DRIVER": "postgres"},
		"bad redis db":         {"REDIS_DB": "x"},
		"bad cache ttl":        {"CACHE_TTL": "soon"},
		"zero workers":         {"WORKER_COUNT": "0"},
		"bad workers":          {"WORKER_COUNT": "many"},
		"zero queue":           {"WORKER_QUEUE": "0"},
		"bad queue":            {"WORKER_QUEUE": "big"},
		"bad token ttl":        {"TOKEN_TTL": "1 day"},
		"bad bcrypt cost":      {"BCRYPT_COST": "99"},
		"bad require token":    {"REQUIRE_TOKEN": "maybe"},
		"token without key":    {"REQUIRE_TOKEN": "true"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadDotenvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=4000\n"), 0o600))
	loadDotenv = func() error { return godotenv.Load(path) }

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "4000", cfg.Port)
}

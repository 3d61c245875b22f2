// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config 為服務啟動所需的全部設定
type Config struct {
	Port          string
	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	// RedisAddr 為空時不啟用使用者快取
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	WorkerCount   int
	WorkerQueue   int

	JWTSecret    string
	TokenTTL     time.Duration
	RequireToken bool
	BcryptCost   int
	LogLevel     string
}

// loadDotenv 可在測試中覆寫
var loadDotenv = func() error { return godotenv.Load() }

// Load 先讀取 .env (不存在則略過)，再從環境變數組出 Config。
// 格式錯誤的值會回傳錯誤，不會默默套用預設值。
func Load() (Config, error) {
	_ = loadDotenv()

	cfg := Config{
		Port:          getenv("PORT", "3000"),
		StoreDriver:   getenv("STORE_DRIVER", DriverMongo),
		MongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGODB_DATABASE", "postboard"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.WorkerCount, err = intEnv("WORKER_COUNT", 1); err != nil {
		return Config{}, err
	}
	if cfg.WorkerCount <= 0 {
		return Config{}, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}
	if cfg.WorkerQueue, err = intEnv("WORKER_QUEUE", 256); err != nil {
		return Config{}, err
	}
	if cfg.WorkerQueue <= 0 {
		return Config{}, fmt.Errorf("無效的 WORKER_QUEUE: %d", cfg.WorkerQueue)
	}
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("無效的 BCRYPT_COST: %d", cfg.BcryptCost)
	}
	if v := os.Getenv("REQUIRE_TOKEN"); v != "" {
		if cfg.RequireToken, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("無效的 REQUIRE_TOKEN: %v", err)
		}
	}

	switch cfg.StoreDriver {
	case DriverMongo:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("環境變數 DATABASE_URL 未設定")
		}
	default:
		return Config{}, fmt.Errorf("無效的 STORE_DRIVER: %q", cfg.StoreDriver)
	}
	if cfg.RequireToken && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("REQUIRE_TOKEN 需要設定 JWT_SECRET")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return d, nil
}

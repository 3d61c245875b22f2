// @title        Postboard API
// @version      1.0
// @description  註冊、登入與個人貼文的後端 API
// @host         localhost:3000
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"postboard/internal/api"
	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/logging"
	"postboard/internal/router"
	"postboard/internal/service"
	"postboard/internal/store"
	"postboard/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "postboard/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newLogger       = logging.New
	openStore       = openConfiguredStore
	connectMongo    = database.ConnectMongo
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	newRedisClient  = cache.NewRedisClient
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

// openConfiguredStore 依 STORE_DRIVER 建立 store，回傳的 close 需在結束時呼叫
func openConfiguredStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("Migration 執行失敗: %v", err)
		}
		db, err := newPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(db), db.Close, nil
	default:
		client, err := connectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		ms := store.NewMongoStore(client.Database(cfg.MongoDatabase))
		if err := ms.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return ms, closeFn, nil
	}
}

func newEcho(log *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.Middleware(log))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定錯誤: %v", err)
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("無效的 LOG_LEVEL: %v", err)
	}
	service.PasswordCost = cfg.BcryptCost

	st, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer closeStore()

	var cch cache.Cache
	if cfg.RedisAddr != "" {
		rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %v", err)
		}
		defer rdb.Close()

		wp := newWorkerPool(cfg.WorkerCount, cfg.WorkerQueue, log)
		defer wp.Stop()

		st = store.NewCachedStore(st, rdb, wp, cfg.CacheTTL, log)
		cch = rdb
	} else {
		log.Info("REDIS_ADDR not set, user cache disabled")
	}

	e := newEcho(log)
	router.Setup(e, st, cch, router.Options{RequireToken: cfg.RequireToken, TokenTTL: cfg.TokenTTL})

	log.WithFields(logrus.Fields{
		"port":   cfg.Port,
		"store":  cfg.StoreDriver,
		"tokens": service.TokensEnabled(),
	}).Info("server starting")
	return startServer(e, ":"+cfg.Port)
}

func main() {
	if err := run(); err != nil {
		logrus.Error(err)
		exitFunc(1)
	}
}

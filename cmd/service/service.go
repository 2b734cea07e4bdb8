// @title        Edu Platform Auth API
// @version      1.0
// @description  教育平台的登入、註冊與角色導向 API
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"edu-platform/internal/cache"
	"edu-platform/internal/config"
	"edu-platform/internal/database"
	"edu-platform/internal/router"
	"edu-platform/internal/service"
	"edu-platform/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	_ "edu-platform/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = serveUntilSignal
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	signer, err := service.NewTokenSigner(cfg.JWTSecret, cfg.TokenTTL, cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("JWT 設定錯誤: %v", err)
	}

	// 先停 worker 再關 Redis，讓排隊中的快取寫入做完
	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	lvl := parseLogLevel(cfg.LogLevel)
	logger := log.New("auth")
	logger.SetLevel(lvl)
	logger.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)

	svc := service.NewAuthService(db, rdb, signer, wp, logger)

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Debug = lvl == log.DEBUG
	e.Logger.SetLevel(lvl)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, svc, db, rdb)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.HTTPAddr)
}

func parseLogLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// serveUntilSignal 啟動 server，收到 SIGINT/SIGTERM 時優雅關閉
func serveUntilSignal(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

func main() {
	if err := run(); err != nil {
		log.Error(err)
		exitFunc(1)
	}
}

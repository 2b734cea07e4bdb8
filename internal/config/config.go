// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 服務啟動所需的所有設定
type Config struct {
	HTTPAddr string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	WorkerCount int
	LogLevel    string
}

// dotenvLoad 可在測試時覆寫
var dotenvLoad = func() error { return godotenv.Load() }

// Load 先嘗試讀取 .env，再從環境變數組出 Config
func Load() (*Config, error) {
	// 沒有 .env 時直接使用環境變數
	_ = dotenvLoad()

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_ISSUER", "edu-platform"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	var err error
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil || cfg.RedisDB < 0 {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}

	hours, err := getEnvAsInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil || hours <= 0 {
		return nil, fmt.Errorf("無效的 JWT_EXPIRATION_HOURS: %v", err)
	}
	cfg.TokenTTL = time.Duration(hours) * time.Hour

	if cfg.WorkerCount, err = getEnvAsInt("WORKER_COUNT", 1); err != nil || cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %v", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// internal/config/config.go

// Package config 從環境變數讀取 ATM 設定，可選擇先載入 .env 檔。
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config 為程式執行所需的全部設定。
type Config struct {
	SeedFile         string
	LogLevel         string
	Debug            bool
	MaxLoginAttempts int
	StatementDir     string
}

// Load 從環境變數組出 Config。
// 指定 envPath 時該檔案必須存在；未指定時，目前目錄有 .env 才載入。
// 已存在的環境變數不會被 .env 覆蓋。
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, errors.Wrapf(err, "load env file %s", envPath)
		}
	} else {
		_ = godotenv.Load()
	}

	attempts, err := parseIntEnv("ATM_MAX_LOGIN_ATTEMPTS", 1)
	if err != nil {
		return nil, err
	}

	return &Config{
		SeedFile:         os.Getenv("ATM_SEED_FILE"),
		LogLevel:         getEnvOrDefault("ATM_LOG_LEVEL", "info"),
		Debug:            os.Getenv("ATM_DEBUG") == "true",
		MaxLoginAttempts: attempts,
		StatementDir:     os.Getenv("ATM_STATEMENT_DIR"),
	}, nil
}

// Validate 檢查 Load 無法單獨判斷的值域。
func (c *Config) Validate() error {
	if c.MaxLoginAttempts < 1 {
		return errors.Errorf("ATM_MAX_LOGIN_ATTEMPTS must be at least 1, got %d", c.MaxLoginAttempts)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "ATM_LOG_LEVEL")
	}
	return nil
}

// Level 回傳實際使用的 log 等級；Debug 優先於 LogLevel。
func (c *Config) Level() logrus.Level {
	if c.Debug {
		return logrus.DebugLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Errorf("invalid integer value for %s: %s", key, value)
	}
	return parsed, nil
}

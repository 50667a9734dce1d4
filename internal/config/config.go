// Package config содержит конфигурацию сервиса учёта расходов.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "expensetracker/pkg/config"
	"expensetracker/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName         = "expenses"
	DefaultEnvFile      = ".env"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
	ErrInvalidConfig    = "Invalid configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP     HTTPConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Logging  LoggingConfig
	Shutdown ShutdownConfig
}

// Load загружает конфигурацию из переменных окружения и необязательных .env файлов.
// Без аргументов читается ./.env, если он есть.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Duration("token_ttl", cfg.JWT.AccessTokenTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}

// Validate проверяет значения, которые не выражаются тегами cleanenv.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.JWT.Validate()
}

// Usage возвращает описание переменных окружения.
func Usage() string {
	return pkgconfig.Usage[Config]("Environment variables:")
}

package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"expensetracker/pkg/logger"
)

const (
	logConnecting = "connecting to Redis"
	logConnected  = "connected to Redis"

	// ErrConnect префикс ошибки подключения.
	ErrConnect = "failed to connect to redis"
)

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	c := cfg.withDefaults()
	log := logger.Log(ctx).With(zap.String("address", c.Address()), zap.Int("db", c.DB))
	log.Info(ctx, logConnecting)

	client := redis.NewClient(&redis.Options{
		Addr:         c.Address(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, logConnected)
	return client, nil
}

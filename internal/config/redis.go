package config

import (
	"time"

	pkgredis "expensetracker/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша сводок.
type RedisConfig struct {
	Enabled      bool          `env:"EXPENSES_REDIS_ENABLED" env-default:"false"`
	Host         string        `env:"EXPENSES_REDIS_HOST" env-default:"localhost"`
	Port         int           `env:"EXPENSES_REDIS_PORT" env-default:"6379"`
	Password     string        `env:"EXPENSES_REDIS_PASSWORD" env-default:""`
	DB           int           `env:"EXPENSES_REDIS_DB" env-default:"0"`
	PoolSize     int           `env:"EXPENSES_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle      int           `env:"EXPENSES_REDIS_MIN_IDLE" env-default:"2"`
	DialTimeout  time.Duration `env:"EXPENSES_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `env:"EXPENSES_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `env:"EXPENSES_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	KeyPrefix    string        `env:"EXPENSES_REDIS_KEY_PREFIX" env-default:"expenses"`
	SummaryTTL   time.Duration `env:"EXPENSES_REDIS_SUMMARY_TTL" env-default:"10m"`
}

// ClientConfig преобразует настройки в параметры клиента go-redis.
func (c *RedisConfig) ClientConfig() *pkgredis.Config {
	return &pkgredis.Config{
		Host:         c.Host,
		Port:         c.Port,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdle,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

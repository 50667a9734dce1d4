package config

import (
	"errors"
	"time"
)

// ErrInvalidTokenTTL возвращается при неположительном времени жизни токена.
var ErrInvalidTokenTTL = errors.New("access token TTL must be positive")

// JWTConfig содержит настройки для JWT токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey      string        `env:"EXPENSES_JWT_SECRET_KEY" env-required:"true"`
	AccessTokenTTL time.Duration `env:"EXPENSES_JWT_ACCESS_TOKEN_TTL" env-default:"1h"`
	BCryptCost     int           `env:"EXPENSES_BCRYPT_COST" env-default:"10"`
}

// Validate проверяет время жизни токена.
func (c *JWTConfig) Validate() error {
	if c.AccessTokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `env:"EXPENSES_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `env:"EXPENSES_HTTP_PORT" env-default:"5000"`
	ReadTimeout  time.Duration `env:"EXPENSES_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"EXPENSES_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	CORSOrigins  string        `env:"EXPENSES_HTTP_CORS_ORIGINS" env-default:"*" env-description:"comma separated list of allowed origins"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetCORSOrigins возвращает список разрешенных источников.
func (c *HTTPConfig) GetCORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

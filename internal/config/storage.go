package config

import (
	"errors"
	"fmt"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnknownDriver возвращается для неподдерживаемого EXPENSES_STORAGE_DRIVER.
var ErrUnknownDriver = errors.New("unknown storage driver")

// StorageConfig выбирает хранилище.
type StorageConfig struct {
	Driver string `env:"EXPENSES_STORAGE_DRIVER" env-default:"postgres" env-description:"postgres or sqlite"`
}

// Validate проверяет имя драйвера.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverPostgres, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string `env:"EXPENSES_POSTGRES_HOST" env-default:"localhost"`
	Port          int    `env:"EXPENSES_POSTGRES_PORT" env-default:"5432"`
	User          string `env:"EXPENSES_POSTGRES_USER" env-default:"postgres"`
	Password      string `env:"EXPENSES_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string `env:"EXPENSES_POSTGRES_DB" env-default:"expenses"`
	SSLMode       string `env:"EXPENSES_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn       int    `env:"EXPENSES_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int    `env:"EXPENSES_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string `env:"EXPENSES_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/postgres"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// SQLiteConfig содержит настройки встраиваемого хранилища.
type SQLiteConfig struct {
	Path string `env:"EXPENSES_SQLITE_PATH" env-default:"data/expenses.db" env-description:"database file or :memory:"`
}

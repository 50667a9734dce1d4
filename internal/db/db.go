// Package db открывает выбранное хранилище и собирает его репозитории.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"expensetracker/internal/adapters/postgres"
	"expensetracker/internal/adapters/sqlite"
	"expensetracker/internal/config"
	"expensetracker/internal/ports/repositories"
	pgdb "expensetracker/pkg/db/postgres"
	"expensetracker/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing expenses database"
	LogDBInitialized     = "expenses database initialized successfully"
	LogMigrationStarting = "starting database migrations"
	LogDBClosing         = "closing expenses database"
)

// Константы для сообщений об ошибках.
const (
	ErrDBInit       = "failed to initialize expenses database"
	ErrDBMigrations = "failed to apply database migrations"
	ErrDBConnection = "failed to connect to expenses database"
	ErrGetPath      = "failed to get path"
)

// Store объединяет репозитории и управление соединением выбранного драйвера.
type Store struct {
	driver   string
	users    repositories.UserRepository
	expenses repositories.ExpenseRepository
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

// Open подключается к хранилищу из cfg.Storage.Driver и применяет миграции.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Storage.Driver))
	log.Info(ctx, LogDBInitializing)

	var (
		store *Store
		err   error
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		store, err = openPostgres(ctx, &cfg.Postgres)
	case config.DriverSQLite:
		store, err = openSQLite(ctx, &cfg.SQLite)
	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
	if err != nil {
		log.Error(ctx, ErrDBInit, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrDBInit, err)
	}

	log.Info(ctx, LogDBInitialized)
	return store, nil
}

func migrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + absPath, nil
}

func openPostgres(ctx context.Context, cfg *config.PostgresConfig) (*Store, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	sourceURL, err := migrationsURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", sourceURL))
	if err := pgdb.MigrateDSN(ctx, cfg.GetConnectionURL(), sourceURL); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := pgdb.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	factory := postgres.NewRepositoryFactory(database.Pool())
	return &Store{
		driver:   config.DriverPostgres,
		users:    factory.UserRepository(),
		expenses: factory.ExpenseRepository(),
		ping:     database.Ping,
		close: func(ctx context.Context) error {
			database.Close(ctx)
			return nil
		},
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.SQLiteConfig) (*Store, error) {
	logger.Log(ctx).Info(ctx, LogDBInitializing, zap.String("path", cfg.Path))

	database, err := sqlite.Open(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	return &Store{
		driver:   config.DriverSQLite,
		users:    database.UserRepository(),
		expenses: database.ExpenseRepository(),
		ping:     database.Ping,
		close: func(context.Context) error {
			return database.Close()
		},
	}, nil
}

// Driver возвращает имя используемого драйвера.
func (s *Store) Driver() string {
	return s.driver
}

// Users возвращает хранилище учетных данных.
func (s *Store) Users() repositories.UserRepository {
	return s.users
}

// Expenses возвращает хранилище расходов.
func (s *Store) Expenses() repositories.ExpenseRepository {
	return s.expenses
}

// Ping проверяет соединение с базой данных.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close закрывает соединение с базой данных.
func (s *Store) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogDBClosing, zap.String("driver", s.driver))
	return s.close(ctx)
}

// Package sqlite содержит встраиваемое хранилище пользователей и расходов на modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"expensetracker/internal/ports/repositories"
)

const (
	// MemoryPath открывает базу в памяти процесса.
	MemoryPath = ":memory:"

	timestampLayout = time.RFC3339Nano

	errCreateDirectory = "create db directory"
	errOpenDatabase    = "open sqlite database"
	errPingDatabase    = "ping sqlite database"
	errMigrateDatabase = "migrate sqlite database"
)

// DB - открытая база SQLite с применёнными миграциями.
type DB struct {
	db *sql.DB
}

// Open открывает (или создаёт) базу по пути path и применяет миграции.
// Пул ограничен одним соединением: SQLite сериализует запись, а база в памяти
// живёт только внутри своего соединения.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", errCreateDirectory, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errOpenDatabase, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", errPingDatabase, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", errMigrateDatabase, err)
	}

	return &DB{db: db}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Ping проверяет доступность базы.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает базу.
func (d *DB) Close() error {
	return d.db.Close()
}

// UserRepository возвращает репозиторий пользователей.
func (d *DB) UserRepository() repositories.UserRepository {
	return NewUserRepository(d.db)
}

// ExpenseRepository возвращает репозиторий расходов.
func (d *DB) ExpenseRepository() repositories.ExpenseRepository {
	return NewExpenseRepository(d.db)
}

func newID() string {
	return ulid.Make().String()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func isUniqueViolation(err error) bool {
	var se *sqlitedriver.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

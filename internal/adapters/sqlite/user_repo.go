package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"expensetracker/internal/domain/entities"
	"expensetracker/internal/domain/services"
	"expensetracker/internal/ports/repositories"
	"expensetracker/pkg/logger"
)

const (
	msgUserNotFound      = "user not found"
	msgUserAlreadyExists = "user with this email already exists"
	errFindUserByEmail   = "error querying user by email"
	errCreateUser        = "error creating user"
)

// UserRepository реализует repositories.UserRepository для SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(db *sql.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	var (
		user      entities.User
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound)
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errFindUserByEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFindUserByEmail, err)
	}

	if user.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("%s: %w", errFindUserByEmail, err)
	}

	return &user, nil
}

// Create создает нового пользователя. Дубликат email возвращает services.ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created := entities.User{
		ID:           newID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		created.ID, created.Name, created.Email, created.PasswordHash, formatTimestamp(created.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, msgUserAlreadyExists)
			return nil, fmt.Errorf("%s: %w", errCreateUser, services.ErrEmailAlreadyExists)
		}
		log.Error(ctx, errCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreateUser, err)
	}

	return &created, nil
}

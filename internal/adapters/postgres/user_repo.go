package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
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

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE email = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound)
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errFindUserByEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFindUserByEmail, err)
	}

	return &user, nil
}

// Create создает нового пользователя. Дубликат email возвращает services.ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, name, email, password_hash, created_at
    `

	var created entities.User
	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.PasswordHash,
		&created.CreatedAt,
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

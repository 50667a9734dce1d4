// Package repositories определяет порты хранилищ пользователей и расходов.
package repositories

import (
	"context"

	"expensetracker/internal/domain/entities"
)

// UserRepository определяет операции хранилища учётных данных.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}

// Package api определяет входные порты приложения.
package api

import (
	"context"

	"expensetracker/internal/domain/entities"
)

// AuthUseCase определяет операции регистрации и входа.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*entities.User, error)

	Login(ctx context.Context, email, password string) (string, error)

	// Authorize проверяет токен и возвращает идентификатор пользователя.
	Authorize(ctx context.Context, token string) (string, error)
}

// Package entities определяет сущности домена учёта расходов.
package entities

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMissingUserField = fmt.Errorf("%w: name, email and password are required", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordBytes)
)

// MaxPasswordBytes - предел длины пароля, который принимает bcrypt.
const MaxPasswordBytes = 72

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

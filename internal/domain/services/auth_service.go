// Package services определяет ошибки и модели доменных сервисов аутентификации.
package services

import "errors"

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
	ErrUnauthorized          = errors.New("unauthorized")
)

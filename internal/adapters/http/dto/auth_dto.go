// Package dto содержит структуры запросов и ответов HTTP API.
package dto

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse содержит выданный токен доступа.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse - ответ с текстовым сообщением, в том числе об ошибке.
type MessageResponse struct {
	Message string `json:"message"`
}

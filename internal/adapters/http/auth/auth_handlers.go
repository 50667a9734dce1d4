// Package auth содержит HTTP обработчики регистрации и входа.
package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"expensetracker/internal/adapters/http/dto"
	"expensetracker/internal/adapters/http/response"
	"expensetracker/internal/ports/api"
	"expensetracker/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"

	ErrorInvalidRequest = "invalid request"

	MsgUserRegistered = "User registered successfully"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Message(ctx, http.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	if _, err := h.authUseCase.Register(requestCtx, req.Name, req.Email, req.Password); err != nil {
		return response.Error(ctx, err)
	}

	return response.Message(ctx, http.StatusCreated, MsgUserRegistered)
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Message(ctx, http.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	token, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, dto.TokenResponse{Token: token})
}

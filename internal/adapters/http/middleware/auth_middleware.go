package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"expensetracker/internal/adapters/http/response"
	"expensetracker/internal/ports/api"
	"expensetracker/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogAuthMiddleware = "auth middleware"

	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Invalid token"

	bearerPrefix = "Bearer "
	localsUserID = "userID"
)

// NewAuthMiddleware проверяет заголовок Authorization: Bearer <token>
// и сохраняет идентификатор пользователя в контексте запроса.
func NewAuthMiddleware(auth api.AuthUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		header := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return response.Message(ctx, http.StatusUnauthorized, MsgNoToken)
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			return response.Message(ctx, http.StatusUnauthorized, MsgNoToken)
		}

		userID, err := auth.Authorize(requestCtx, token)
		if err != nil {
			return response.Message(ctx, http.StatusUnauthorized, MsgInvalidToken)
		}

		ctx.Locals(localsUserID, userID)
		ctx.SetContext(logger.NewUserIDContext(requestCtx, userID))

		return ctx.Next()
	}
}

// UserID возвращает идентификатор пользователя, установленный NewAuthMiddleware.
func UserID(ctx fiber.Ctx) string {
	return fiber.Locals[string](ctx, localsUserID)
}

// Package health содержит проверку доступности сервиса.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"expensetracker/internal/adapters/http/dto"
	"expensetracker/internal/adapters/http/response"
	"expensetracker/pkg/logger"
)

// Константы статусов и сообщений.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	LogDependencyDown = "health check failed"

	checkTimeout = 2 * time.Second
)

// Checker - зависимость, доступность которой проверяется.
type Checker interface {
	Ping(ctx context.Context) error
}

// Check связывает имя зависимости с проверкой.
type Check struct {
	Name    string
	Checker Checker
}

// Handler отвечает на GET /health.
type Handler struct {
	checks []Check
}

// NewHandler создает обработчик проверки доступности.
func NewHandler(checks ...Check) *Handler {
	return &Handler{checks: checks}
}

// Health пингует все зависимости: 200 {"status":"ok"} или 503 {"status":"unavailable"}.
func (h *Handler) Health(ctx fiber.Ctx) error {
	requestCtx, cancel := context.WithTimeout(ctx.Context(), checkTimeout)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Checker.Ping(requestCtx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, LogDependencyDown,
				zap.String("dependency", check.Name), zap.Error(err))
			return response.JSON(ctx, http.StatusServiceUnavailable, dto.HealthResponse{Status: StatusUnavailable})
		}
	}

	return response.JSON(ctx, http.StatusOK, dto.HealthResponse{Status: StatusOK})
}

// Package http содержит компоненты для HTTP сервера.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"expensetracker/internal/adapters/http/auth"
	"expensetracker/internal/adapters/http/expenses"
	"expensetracker/internal/adapters/http/health"
	"expensetracker/internal/adapters/http/middleware"
	"expensetracker/internal/adapters/http/response"
	"expensetracker/internal/config"
	"expensetracker/internal/ports/api"
)

// MsgRouteNotFound - ответ для несуществующих маршрутов.
const MsgRouteNotFound = "Route not found"

// RouterOptions содержит необязательные параметры маршрутизации.
type RouterOptions struct {
	CORSOrigins  []string
	HealthChecks []health.Check
	Now          func() time.Time
}

// NewApp создает fiber приложение с JSON обработчиком ошибок.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "expenses",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: response.ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, authUseCase api.AuthUseCase, expenseUseCase api.ExpenseUseCase, opts RouterOptions) {
	authHandler := auth.NewHandler(authUseCase)
	expenseHandler := expenses.NewHandler(expenseUseCase, opts.Now)
	healthHandler := health.NewHandler(opts.HealthChecks...)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewCORSMiddleware(origins))

	app.Get("/health", healthHandler.Health)

	apiGroup := app.Group("/api")

	// Auth routes (публичные).
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	// Маршруты расходов (требуют авторизации).
	expenseRoutes := apiGroup.Group("/expenses")
	expenseRoutes.Use(middleware.NewAuthMiddleware(authUseCase))
	expenseRoutes.Get("/summary", expenseHandler.Summary)
	expenseRoutes.Get("/totals", expenseHandler.Totals)
	expenseRoutes.Post("/", expenseHandler.AddExpense)
	expenseRoutes.Get("/", expenseHandler.ListExpenses)
	expenseRoutes.Put("/:id", expenseHandler.UpdateExpense)
	expenseRoutes.Delete("/:id", expenseHandler.DeleteExpense)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return response.Message(c, fiber.StatusNotFound, MsgRouteNotFound)
	})
}

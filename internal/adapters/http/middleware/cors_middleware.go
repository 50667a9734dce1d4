package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewCORSMiddleware разрешает запросы с указанных источников.
func NewCORSMiddleware(origins []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:  []string{fiber.HeaderAuthorization, fiber.HeaderContentType, HeaderRequestID},
		ExposeHeaders: []string{HeaderRequestID},
	})
}

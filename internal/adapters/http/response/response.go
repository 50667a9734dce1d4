// Package response отображает ошибки приложения в HTTP ответы.
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"expensetracker/internal/adapters/http/dto"
	"expensetracker/internal/domain/entities"
	"expensetracker/internal/domain/services"
	"expensetracker/pkg/logger"
)

// Тексты ответов об ошибках.
const (
	MsgAllFieldsRequired  = "All fields are required"
	MsgMonthRequired      = "Month is required in YYYY-MM format"
	MsgInvalidAmount      = "Amount must be a positive number up to 9999999999.99"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
	MsgInvalidPassword    = "Invalid password"
	MsgInvalidCategory    = "Invalid category"
	MsgDescriptionEmpty   = "Description is required"
	MsgInvalidDate        = "Date must be in YYYY-MM-DD format"
	MsgInvalidInput       = "Invalid input"
	MsgInvalidRequestBody = "Invalid request body"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid Credentials"
	MsgExpenseNotFound    = "Expense not found"
	MsgUnauthorized       = "Unauthorized"
	MsgServerError        = "Server Error"

	logRequestFailed  = "request failed"
	logClientError    = "request rejected"
	errSendingMessage = "error sending response"
)

type mapping struct {
	err     error
	status  int
	message string
}

// Порядок важен: конкретные ошибки валидации проверяются раньше общей ErrValidation.
var mappings = []mapping{
	{entities.ErrMissingUserField, http.StatusBadRequest, MsgAllFieldsRequired},
	{entities.ErrMissingExpenseData, http.StatusBadRequest, MsgAllFieldsRequired},
	{entities.ErrMonthRequired, http.StatusBadRequest, MsgMonthRequired},
	{entities.ErrInvalidMonth, http.StatusBadRequest, MsgMonthRequired},
	{entities.ErrInvalidAmount, http.StatusBadRequest, MsgInvalidAmount},
	{entities.ErrInvalidCategory, http.StatusBadRequest, MsgInvalidCategory},
	{entities.ErrEmptyDescription, http.StatusBadRequest, MsgDescriptionEmpty},
	{entities.ErrMissingDate, http.StatusBadRequest, MsgAllFieldsRequired},
	{entities.ErrInvalidDate, http.StatusBadRequest, MsgInvalidDate},
	{entities.ErrPasswordTooLong, http.StatusBadRequest, MsgPasswordTooLong},
	{entities.ErrValidation, http.StatusBadRequest, MsgInvalidInput},
	{services.ErrInvalidPassword, http.StatusBadRequest, MsgInvalidPassword},
	{services.ErrEmailAlreadyExists, http.StatusBadRequest, MsgUserExists},
	{services.ErrInvalidCredentials, http.StatusBadRequest, MsgInvalidCredentials},
	{entities.ErrExpenseNotFound, http.StatusNotFound, MsgExpenseNotFound},
	{services.ErrUnauthorized, http.StatusUnauthorized, MsgUnauthorized},
}

// Classify возвращает HTTP статус и текст ответа для ошибки.
func Classify(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, MsgServerError
}

// Error отправляет ответ об ошибке. Внутренние ошибки логируются, клиент получает "Server Error".
func Error(c fiber.Ctx, err error) error {
	ctx := c.Context()
	status, message := Classify(err)
	if status == http.StatusInternalServerError {
		logger.Log(ctx).Error(ctx, logRequestFailed, zap.Error(err))
	} else {
		logger.Log(ctx).Debug(ctx, logClientError, zap.Int("status", status), zap.Error(err))
	}
	return Message(c, status, message)
}

// Message отправляет JSON {"message": ...} с заданным статусом.
func Message(c fiber.Ctx, status int, message string) error {
	if err := c.Status(status).JSON(dto.MessageResponse{Message: message}); err != nil {
		return fmt.Errorf("%s: %w", errSendingMessage, err)
	}
	return nil
}

// JSON отправляет тело ответа с заданным статусом.
func JSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errSendingMessage, err)
	}
	return nil
}

// ErrorHandler обрабатывает ошибки, не отправленные обработчиками.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code != http.StatusInternalServerError {
		return Message(c, fiberErr.Code, fiberErr.Message)
	}
	return Error(c, err)
}

// Package expenses содержит HTTP обработчики для работы с расходами.
package expenses

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"expensetracker/internal/adapters/http/dto"
	"expensetracker/internal/adapters/http/middleware"
	"expensetracker/internal/adapters/http/response"
	"expensetracker/internal/ports/api"
	"expensetracker/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogHandlerAdd       = "expenses handler: add"
	LogHandlerList      = "expenses handler: list"
	LogHandlerUpdate    = "expenses handler: update"
	LogHandlerDelete    = "expenses handler: delete"
	LogHandlerSummarize = "expenses handler: summary"
	LogHandlerTotals    = "expenses handler: totals"

	ErrorInvalidRequest = "invalid request"

	MsgExpenseDeleted = "Expense deleted successfully"

	paramID    = "id"
	queryMonth = "month"
)

// Handler содержит HTTP обработчики расходов.
type Handler struct {
	expenseUseCase api.ExpenseUseCase
	now            func() time.Time
}

// NewHandler создает обработчик расходов. now задает текущее время для итогов.
func NewHandler(expenseUseCase api.ExpenseUseCase, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		expenseUseCase: expenseUseCase,
		now:            now,
	}
}

// AddExpense создает расход текущего пользователя.
func (h *Handler) AddExpense(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerAdd)

	var req dto.CreateExpenseRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Message(ctx, http.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	input, err := req.ToEntity()
	if err != nil {
		return response.Error(ctx, err)
	}

	expense, err := h.expenseUseCase.Add(requestCtx, middleware.UserID(ctx), input)
	if err != nil {
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusCreated, dto.FromExpense(expense))
}

// ListExpenses возвращает расходы за месяц (?month=YYYY-MM) или за всё время.
func (h *Handler) ListExpenses(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerList)

	list, err := h.expenseUseCase.List(requestCtx, middleware.UserID(ctx), ctx.Query(queryMonth))
	if err != nil {
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, dto.FromExpenses(list))
}

// UpdateExpense частично обновляет расход.
func (h *Handler) UpdateExpense(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerUpdate, zap.String("expense_id", ctx.Params(paramID)))

	var req dto.UpdateExpenseRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Message(ctx, http.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	patch, err := req.ToPatch()
	if err != nil {
		return response.Error(ctx, err)
	}

	expense, err := h.expenseUseCase.Update(requestCtx, middleware.UserID(ctx), ctx.Params(paramID), patch)
	if err != nil {
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, dto.FromExpense(expense))
}

// DeleteExpense удаляет расход.
func (h *Handler) DeleteExpense(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDelete, zap.String("expense_id", ctx.Params(paramID)))

	if err := h.expenseUseCase.Delete(requestCtx, middleware.UserID(ctx), ctx.Params(paramID)); err != nil {
		return response.Error(ctx, err)
	}

	return response.Message(ctx, http.StatusOK, MsgExpenseDeleted)
}

// Summary возвращает суммы по категориям за месяц.
func (h *Handler) Summary(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSummarize)

	totals, err := h.expenseUseCase.Summarize(requestCtx, middleware.UserID(ctx), ctx.Query(queryMonth))
	if err != nil {
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, dto.FromCategoryTotals(totals))
}

// Totals возвращает суммы за всё время, текущий месяц и текущий год.
func (h *Handler) Totals(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerTotals)

	totals, err := h.expenseUseCase.Totals(requestCtx, middleware.UserID(ctx), h.now())
	if err != nil {
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, http.StatusOK, dto.TotalsResponse{
		Total: totals.Total,
		Month: totals.Month,
		Year:  totals.Year,
	})
}

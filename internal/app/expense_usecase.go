package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"expensetracker/internal/domain/entities"
	"expensetracker/internal/domain/services"
	"expensetracker/internal/ports/api"
	"expensetracker/internal/ports/cache"
	"expensetracker/internal/ports/repositories"
	"expensetracker/pkg/logger"
)

const (
	methodAdd       = "Add"
	methodList      = "List"
	methodUpdate    = "Update"
	methodDelete    = "Delete"
	methodSummarize = "Summarize"
	methodTotals    = "Totals"

	msgExpenseAdded     = "expense added"
	msgExpenseUpdated   = "expense updated"
	msgExpenseDeleted   = "expense deleted"
	msgExpenseNotFound  = "expense not found"
	msgInvalidInput     = "invalid expense input"
	msgSummaryCacheHit  = "summary served from cache"
	msgSummaryCacheMiss = "summary cache miss"

	msgErrAddExpense      = "failed to add expense"
	msgErrListExpenses    = "failed to list expenses"
	msgErrUpdateExpense   = "failed to update expense"
	msgErrDeleteExpense   = "failed to delete expense"
	msgErrSummarize       = "failed to summarize expenses"
	msgErrTotals          = "failed to compute totals"
	msgErrCacheGeneration = "failed to read summary generation"
	msgErrCacheGet        = "failed to read cached summary"
	msgErrCacheSet        = "failed to store summary in cache"
	msgErrCacheInvalidate = "failed to invalidate summary cache"

	errCtxValidatingExpense = "validating expense"
	errCtxAddingExpense     = "adding expense"
	errCtxListingExpenses   = "listing expenses"
	errCtxUpdatingExpense   = "updating expense"
	errCtxDeletingExpense   = "deleting expense"
	errCtxSummarizing       = "summarizing expenses"
	errCtxTotals            = "computing totals"
	errCtxCheckingOwner     = "checking owner"
)

// ExpenseUseCaseImpl реализует интерфейс ExpenseUseCase.
type ExpenseUseCaseImpl struct {
	repo  repositories.ExpenseRepository
	cache cache.SummaryCache

	group singleflight.Group
	// writes растет при каждой записи любого владельца и входит в ключ singleflight.
	writes atomic.Uint64
	// stale: userID -> номер записи, после которой не удалось сбросить кэш владельца.
	// Запись удаляется, как только повторный сброс проходит.
	stale sync.Map
}

// NewExpenseUseCase создает сервис расходов. При summaryCache == nil кэш не используется.
func NewExpenseUseCase(repo repositories.ExpenseRepository, summaryCache cache.SummaryCache) api.ExpenseUseCase {
	return &ExpenseUseCaseImpl{
		repo:  repo,
		cache: summaryCache,
	}
}

func checkOwner(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%s: %w", errCtxCheckingOwner, services.ErrUnauthorized)
	}
	return nil
}

// afterWrite делает недействительными сводки владельца.
// Если сбросить кэш не удалось, сводки владельца считаются из хранилища до успешного сброса.
func (u *ExpenseUseCaseImpl) afterWrite(ctx context.Context, log *logger.Logger, userID string) {
	seq := u.writes.Add(1)
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx, userID); err != nil {
		log.Warn(ctx, msgErrCacheInvalidate, zap.Error(err))
		u.stale.Store(userID, seq)
	}
}

// cacheUsable сообщает, можно ли читать и писать кэш сводок владельца.
func (u *ExpenseUseCaseImpl) cacheUsable(ctx context.Context, log *logger.Logger, userID string) bool {
	seq, ok := u.stale.Load(userID)
	if !ok {
		return true
	}
	if err := u.cache.Invalidate(ctx, userID); err != nil {
		log.Warn(ctx, msgErrCacheInvalidate, zap.Error(err))
		return false
	}
	u.stale.CompareAndDelete(userID, seq)
	return true
}

// Add создает расход текущего пользователя.
func (u *ExpenseUseCaseImpl) Add(ctx context.Context, userID string, expense entities.NewExpense) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAdd))

	if err := checkOwner(userID); err != nil {
		return nil, err
	}

	expense = expense.Normalize()
	if err := expense.Validate(); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingExpense, err)
	}

	created, err := u.repo.Create(ctx, userID, expense)
	if err != nil {
		log.Error(ctx, msgErrAddExpense, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxAddingExpense, err)
	}
	u.afterWrite(ctx, log, userID)

	log.Info(ctx, msgExpenseAdded, zap.String("expenseID", created.ID))
	return created, nil
}

// List возвращает расходы за месяц YYYY-MM; пустая строка или "all" означает все расходы.
func (u *ExpenseUseCaseImpl) List(ctx context.Context, userID, month string) ([]*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList))

	if err := checkOwner(userID); err != nil {
		return nil, err
	}

	period, err := entities.ParseMonthFilter(month)
	if err != nil {
		log.Debug(ctx, msgInvalidInput, zap.String("month", month))
		return nil, fmt.Errorf("%s: %w", errCtxListingExpenses, err)
	}

	expenses, err := u.repo.List(ctx, userID, period)
	if err != nil {
		log.Error(ctx, msgErrListExpenses, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingExpenses, err)
	}

	return expenses, nil
}

// Update применяет частичное обновление к расходу текущего пользователя.
func (u *ExpenseUseCaseImpl) Update(ctx context.Context, userID, id string, patch entities.ExpensePatch) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.String("expenseID", id))

	if err := checkOwner(userID); err != nil {
		return nil, err
	}

	patch = patch.Normalize()
	if err := patch.Validate(); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingExpense, err)
	}

	updated, err := u.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, entities.ErrExpenseNotFound) {
			log.Debug(ctx, msgExpenseNotFound)
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingExpense, err)
		}
		log.Error(ctx, msgErrUpdateExpense, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingExpense, err)
	}
	if !patch.IsEmpty() {
		u.afterWrite(ctx, log, userID)
	}

	log.Info(ctx, msgExpenseUpdated)
	return updated, nil
}

// Delete удаляет расход текущего пользователя.
func (u *ExpenseUseCaseImpl) Delete(ctx context.Context, userID, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.String("expenseID", id))

	if err := checkOwner(userID); err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, entities.ErrExpenseNotFound) {
			log.Debug(ctx, msgExpenseNotFound)
			return fmt.Errorf("%s: %w", errCtxDeletingExpense, err)
		}
		log.Error(ctx, msgErrDeleteExpense, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingExpense, err)
	}
	u.afterWrite(ctx, log, userID)

	log.Info(ctx, msgExpenseDeleted)
	return nil
}

// Summarize возвращает суммы по категориям за месяц YYYY-MM.
// Одновременные одинаковые запросы объединяются в один запрос к хранилищу.
func (u *ExpenseUseCaseImpl) Summarize(ctx context.Context, userID, month string) ([]entities.CategoryTotal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSummarize), zap.String("month", month))

	if err := checkOwner(userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(month) == "" {
		return nil, fmt.Errorf("%s: %w", errCtxSummarizing, entities.ErrMonthRequired)
	}
	m, err := entities.ParseMonth(month)
	if err != nil {
		log.Debug(ctx, msgInvalidInput)
		return nil, fmt.Errorf("%s: %w", errCtxSummarizing, err)
	}

	key := fmt.Sprintf("%s|%d|%s", userID, u.writes.Load(), m)
	shared := context.WithoutCancel(ctx)
	ch := u.group.DoChan(key, func() (any, error) {
		return u.summarize(shared, log, userID, m)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", errCtxSummarizing, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			log.Error(ctx, msgErrSummarize, zap.Error(res.Err))
			return nil, fmt.Errorf("%s: %w", errCtxSummarizing, res.Err)
		}
		totals := res.Val.([]entities.CategoryTotal)
		return append([]entities.CategoryTotal(nil), totals...), nil
	}
}

func (u *ExpenseUseCaseImpl) summarize(ctx context.Context, log *logger.Logger, userID string, m entities.Month) ([]entities.CategoryTotal, error) {
	if u.cache == nil || !u.cacheUsable(ctx, log, userID) {
		return u.repo.Summarize(ctx, userID, m.Range())
	}

	generation, genErr := u.cache.Generation(ctx, userID)
	if genErr != nil {
		log.Warn(ctx, msgErrCacheGeneration, zap.Error(genErr))
	} else {
		cached, err := u.cache.GetSummary(ctx, userID, generation, m)
		switch {
		case err == nil:
			log.Debug(ctx, msgSummaryCacheHit)
			return cached, nil
		case errors.Is(err, cache.ErrCacheMiss):
			log.Debug(ctx, msgSummaryCacheMiss)
		default:
			log.Warn(ctx, msgErrCacheGet, zap.Error(err))
		}
	}

	totals, err := u.repo.Summarize(ctx, userID, m.Range())
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		if err := u.cache.SetSummary(ctx, userID, generation, m, totals); err != nil {
			log.Warn(ctx, msgErrCacheSet, zap.Error(err))
		}
	}
	return totals, nil
}

// Totals возвращает суммы за всё время, за текущий месяц и за текущий год относительно now (UTC).
func (u *ExpenseUseCaseImpl) Totals(ctx context.Context, userID string, now time.Time) (*entities.Totals, error) {
	log := logger.Log(ctx).With(zap.String("method", methodTotals))

	if err := checkOwner(userID); err != nil {
		return nil, err
	}

	monthRange := entities.MonthOf(now).Range()
	yearRange := entities.YearRange(now)

	var totals entities.Totals
	for _, q := range []struct {
		period *entities.DateRange
		dst    *float64
	}{
		{nil, &totals.Total},
		{&monthRange, &totals.Month},
		{&yearRange, &totals.Year},
	} {
		sum, err := u.repo.Sum(ctx, userID, q.period)
		if err != nil {
			log.Error(ctx, msgErrTotals, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxTotals, err)
		}
		*q.dst = sum
	}

	return &totals, nil
}

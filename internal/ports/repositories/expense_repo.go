package repositories

import (
	"context"

	"expensetracker/internal/domain/entities"
)

// ExpenseRepository определяет операции хранилища расходов.
// Все операции ограничены владельцем userID.
type ExpenseRepository interface {
	Create(ctx context.Context, userID string, expense entities.NewExpense) (*entities.Expense, error)

	// List возвращает расходы по убыванию даты; nil диапазон означает все записи.
	List(ctx context.Context, userID string, period *entities.DateRange) ([]*entities.Expense, error)

	Update(ctx context.Context, userID, id string, patch entities.ExpensePatch) (*entities.Expense, error)

	Delete(ctx context.Context, userID, id string) error

	// Summarize группирует расходы периода по категориям.
	Summarize(ctx context.Context, userID string, period entities.DateRange) ([]entities.CategoryTotal, error)

	// Sum возвращает сумму расходов; nil диапазон означает все записи.
	Sum(ctx context.Context, userID string, period *entities.DateRange) (float64, error)
}

package api

import (
	"context"
	"time"

	"expensetracker/internal/domain/entities"
)

// ExpenseUseCase определяет операции над расходами текущего пользователя.
type ExpenseUseCase interface {
	Add(ctx context.Context, userID string, expense entities.NewExpense) (*entities.Expense, error)

	List(ctx context.Context, userID, month string) ([]*entities.Expense, error)

	Update(ctx context.Context, userID, id string, patch entities.ExpensePatch) (*entities.Expense, error)

	Delete(ctx context.Context, userID, id string) error

	Summarize(ctx context.Context, userID, month string) ([]entities.CategoryTotal, error)

	Totals(ctx context.Context, userID string, now time.Time) (*entities.Totals, error)
}

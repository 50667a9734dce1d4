package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"expensetracker/internal/domain/entities"
	"expensetracker/internal/ports/repositories"
	"expensetracker/pkg/logger"
)

const (
	expenseColumns = `id, user_id, amount_cents, category, date, description, created_at, updated_at`

	msgExpenseNotFound   = "expense not found or not owned by user"
	errCreateExpense     = "failed to create expense"
	errListExpenses      = "failed to list expenses"
	errScanExpense       = "failed to scan expense"
	errUpdateExpense     = "failed to update expense"
	errDeleteExpense     = "failed to delete expense"
	errSummarizeExpenses = "failed to summarize expenses"
	errSumExpenses       = "failed to sum expenses"
)

// ExpenseRepository реализует repositories.ExpenseRepository для SQLite.
// Суммы хранятся в копейках, даты в виде YYYY-MM-DD.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository создает новый репозиторий расходов.
func NewExpenseRepository(db *sql.DB) repositories.ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

// fromTotalCents переводит результат TOTAL(), который в SQLite не переполняется, в сумму.
func fromTotalCents(cents float64) float64 {
	return math.Round(cents) / 100
}

func formatDate(t time.Time) string {
	return t.UTC().Format(entities.DateLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*entities.Expense, error) {
	var (
		e                    entities.Expense
		cents                int64
		category, date       string
		createdAt, updatedAt string
	)
	if err := row.Scan(&e.ID, &e.UserID, &cents, &category, &date, &e.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if e.Date, err = time.Parse(entities.DateLayout, date); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	e.Amount = fromCents(cents)
	e.Category = entities.Category(category)
	return &e, nil
}

func periodFilter(query *strings.Builder, args []any, period *entities.DateRange) []any {
	if period == nil {
		return args
	}
	query.WriteString(` AND date >= ? AND date < ?`)
	return append(args, formatDate(period.From), formatDate(period.To))
}

// Create сохраняет новый расход.
func (r *ExpenseRepository) Create(ctx context.Context, userID string, expense entities.NewExpense) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Create"))

	now := formatTimestamp(time.Now())
	created, err := scanExpense(r.db.QueryRowContext(ctx, `
        INSERT INTO expenses (id, user_id, amount_cents, category, date, description, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING `+expenseColumns,
		newID(),
		userID,
		toCents(expense.Amount),
		string(expense.Category),
		formatDate(expense.Date),
		expense.Description,
		now,
		now,
	))
	if err != nil {
		log.Error(ctx, errCreateExpense, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreateExpense, err)
	}

	return created, nil
}

// List возвращает расходы владельца по убыванию даты, при равенстве в порядке добавления.
func (r *ExpenseRepository) List(ctx context.Context, userID string, period *entities.DateRange) ([]*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "List"))

	var query strings.Builder
	query.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = ?`)
	args := periodFilter(&query, []any{userID}, period)
	query.WriteString(` ORDER BY date DESC, rowid ASC`)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		log.Error(ctx, errListExpenses, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListExpenses, err)
	}
	defer rows.Close()

	expenses := make([]*entities.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			log.Error(ctx, errScanExpense, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanExpense, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errListExpenses, err)
	}

	return expenses, nil
}

// Update атомарно применяет патч к расходу владельца.
func (r *ExpenseRepository) Update(ctx context.Context, userID, id string, patch entities.ExpensePatch) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Update"))

	var amount, category, date, description any
	if patch.Amount != nil {
		amount = toCents(*patch.Amount)
	}
	if patch.Category != nil {
		category = string(*patch.Category)
	}
	if patch.Date != nil {
		date = formatDate(*patch.Date)
	}
	if patch.Description != nil {
		description = *patch.Description
	}

	updated, err := scanExpense(r.db.QueryRowContext(ctx, `
        UPDATE expenses
        SET amount_cents = COALESCE(?, amount_cents),
            category     = COALESCE(?, category),
            date         = COALESCE(?, date),
            description  = COALESCE(?, description),
            updated_at   = ?
        WHERE id = ? AND user_id = ?
        RETURNING `+expenseColumns,
		amount, category, date, description, formatTimestamp(time.Now()), id, userID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug(ctx, msgExpenseNotFound, zap.String("expenseID", id))
			return nil, entities.ErrExpenseNotFound
		}
		log.Error(ctx, errUpdateExpense, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errUpdateExpense, err)
	}

	return updated, nil
}

// Delete удаляет расход владельца.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Delete"))

	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error(ctx, errDeleteExpense, zap.Error(err))
		return fmt.Errorf("%s: %w", errDeleteExpense, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", errDeleteExpense, err)
	}
	if affected == 0 {
		log.Debug(ctx, msgExpenseNotFound, zap.String("expenseID", id))
		return entities.ErrExpenseNotFound
	}

	return nil
}

// Summarize суммирует расходы периода по категориям: по убыванию суммы, затем по имени категории.
func (r *ExpenseRepository) Summarize(ctx context.Context, userID string, period entities.DateRange) ([]entities.CategoryTotal, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Summarize"))

	rows, err := r.db.QueryContext(ctx, `
        SELECT category, TOTAL(amount_cents) AS total
        FROM expenses
        WHERE user_id = ? AND date >= ? AND date < ?
        GROUP BY category
        ORDER BY total DESC, category ASC`,
		userID, formatDate(period.From), formatDate(period.To),
	)
	if err != nil {
		log.Error(ctx, errSummarizeExpenses, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSummarizeExpenses, err)
	}
	defer rows.Close()

	totals := make([]entities.CategoryTotal, 0)
	for rows.Next() {
		var (
			category string
			cents    float64
		)
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("%s: %w", errSummarizeExpenses, err)
		}
		totals = append(totals, entities.CategoryTotal{Category: entities.Category(category), Total: fromTotalCents(cents)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errSummarizeExpenses, err)
	}

	return totals, nil
}

// Sum возвращает сумму расходов владельца за период.
func (r *ExpenseRepository) Sum(ctx context.Context, userID string, period *entities.DateRange) (float64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Sum"))

	var query strings.Builder
	query.WriteString(`SELECT TOTAL(amount_cents) FROM expenses WHERE user_id = ?`)
	args := periodFilter(&query, []any{userID}, period)

	var cents float64
	if err := r.db.QueryRowContext(ctx, query.String(), args...).Scan(&cents); err != nil {
		log.Error(ctx, errSumExpenses, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errSumExpenses, err)
	}

	return fromTotalCents(cents), nil
}

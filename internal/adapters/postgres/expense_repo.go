package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"expensetracker/internal/domain/entities"
	"expensetracker/internal/ports/repositories"
	"expensetracker/pkg/logger"
)

const (
	expenseColumns = `id, user_id, amount::float8, category, date, description, created_at, updated_at`

	msgCreatingExpense   = "creating expense"
	msgExpenseCreated    = "expense created"
	msgExpenseNotFound   = "expense not found or not owned by user"
	msgExpensesListed    = "expenses listed"
	errCreateExpense     = "failed to create expense"
	errListExpenses      = "failed to list expenses"
	errScanExpense       = "failed to scan expense"
	errUpdateExpense     = "failed to update expense"
	errDeleteExpense     = "failed to delete expense"
	errSummarizeExpenses = "failed to summarize expenses"
	errSumExpenses       = "failed to sum expenses"
)

// ExpenseRepository реализует repositories.ExpenseRepository для PostgreSQL.
type ExpenseRepository struct {
	pool PgxPoolInterface
}

// NewExpenseRepository создает новый репозиторий расходов.
func NewExpenseRepository(pool PgxPoolInterface) repositories.ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func scanExpense(row pgx.Row) (*entities.Expense, error) {
	var (
		e        entities.Expense
		category string
	)
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Amount,
		&category,
		&e.Date,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Category = entities.Category(category)
	e.Date = entities.TruncateDay(e.Date)
	return &e, nil
}

// periodFilter дописывает условие по диапазону дат, начиная с параметра $next.
func periodFilter(query *strings.Builder, args []any, period *entities.DateRange) []any {
	if period == nil {
		return args
	}
	fmt.Fprintf(query, " AND date >= $%d AND date < $%d", len(args)+1, len(args)+2)
	return append(args, period.From, period.To)
}

// Create сохраняет новый расход.
func (r *ExpenseRepository) Create(ctx context.Context, userID string, expense entities.NewExpense) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Create"))
	log.Debug(ctx, msgCreatingExpense)

	query := `
        INSERT INTO expenses (user_id, amount, category, date, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + expenseColumns

	created, err := scanExpense(r.pool.QueryRow(ctx, query,
		userID,
		expense.Amount,
		string(expense.Category),
		expense.Date,
		expense.Description,
	))
	if err != nil {
		log.Error(ctx, errCreateExpense, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreateExpense, err)
	}

	log.Debug(ctx, msgExpenseCreated, zap.String("expenseID", created.ID))
	return created, nil
}

// List возвращает расходы владельца по убыванию даты, при равенстве в порядке добавления.
func (r *ExpenseRepository) List(ctx context.Context, userID string, period *entities.DateRange) ([]*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "List"))

	if !validUUID(userID) {
		return []*entities.Expense{}, nil
	}

	var query strings.Builder
	query.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`)
	args := periodFilter(&query, []any{userID}, period)
	query.WriteString(` ORDER BY date DESC, created_at ASC, id ASC`)

	rows, err := r.pool.Query(ctx, query.String(), args...)
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
		log.Error(ctx, errListExpenses, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListExpenses, err)
	}

	log.Debug(ctx, msgExpensesListed, zap.Int("count", len(expenses)))
	return expenses, nil
}

// nullable превращает nil-указатель в SQL NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// Update атомарно применяет патч к расходу владельца.
// Чужой или несуществующий расход даёт entities.ErrExpenseNotFound.
func (r *ExpenseRepository) Update(ctx context.Context, userID, id string, patch entities.ExpensePatch) (*entities.Expense, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Update"))

	if !validUUID(id) || !validUUID(userID) {
		log.Debug(ctx, msgExpenseNotFound, zap.String("expenseID", id))
		return nil, entities.ErrExpenseNotFound
	}

	var category *string
	if patch.Category != nil {
		c := string(*patch.Category)
		category = &c
	}

	query := `
        UPDATE expenses
        SET amount      = COALESCE($3, amount),
            category    = COALESCE($4, category),
            date        = COALESCE($5, date),
            description = COALESCE($6, description),
            updated_at  = clock_timestamp()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + expenseColumns

	updated, err := scanExpense(r.pool.QueryRow(ctx, query,
		id,
		userID,
		nullable(patch.Amount),
		nullable(category),
		nullable(patch.Date),
		nullable(patch.Description),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	if !validUUID(id) || !validUUID(userID) {
		log.Debug(ctx, msgExpenseNotFound, zap.String("expenseID", id))
		return entities.ErrExpenseNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error(ctx, errDeleteExpense, zap.Error(err))
		return fmt.Errorf("%s: %w", errDeleteExpense, err)
	}

	if tag.RowsAffected() == 0 {
		log.Debug(ctx, msgExpenseNotFound, zap.String("expenseID", id))
		return entities.ErrExpenseNotFound
	}

	return nil
}

// Summarize суммирует расходы периода по категориям: по убыванию суммы, затем по имени категории.
func (r *ExpenseRepository) Summarize(ctx context.Context, userID string, period entities.DateRange) ([]entities.CategoryTotal, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Summarize"))

	if !validUUID(userID) {
		return []entities.CategoryTotal{}, nil
	}

	query := `
        SELECT category, SUM(amount)::float8 AS total
        FROM expenses
        WHERE user_id = $1 AND date >= $2 AND date < $3
        GROUP BY category
        ORDER BY total DESC, category ASC
    `

	rows, err := r.pool.Query(ctx, query, userID, period.From, period.To)
	if err != nil {
		log.Error(ctx, errSummarizeExpenses, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSummarizeExpenses, err)
	}
	defer rows.Close()

	totals := make([]entities.CategoryTotal, 0)
	for rows.Next() {
		var (
			category string
			total    float64
		)
		if err := rows.Scan(&category, &total); err != nil {
			log.Error(ctx, errSummarizeExpenses, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errSummarizeExpenses, err)
		}
		totals = append(totals, entities.CategoryTotal{Category: entities.Category(category), Total: total})
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, errSummarizeExpenses, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSummarizeExpenses, err)
	}

	return totals, nil
}

// Sum возвращает сумму расходов владельца за период.
func (r *ExpenseRepository) Sum(ctx context.Context, userID string, period *entities.DateRange) (float64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "expense"), zap.String("method", "Sum"))

	if !validUUID(userID) {
		return 0, nil
	}

	var query strings.Builder
	query.WriteString(`SELECT COALESCE(SUM(amount), 0)::float8 FROM expenses WHERE user_id = $1`)
	args := periodFilter(&query, []any{userID}, period)

	var total float64
	if err := r.pool.QueryRow(ctx, query.String(), args...).Scan(&total); err != nil {
		log.Error(ctx, errSumExpenses, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errSumExpenses, err)
	}

	return total, nil
}

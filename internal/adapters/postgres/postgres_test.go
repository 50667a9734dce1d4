package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/adapters/postgres"
	"expensetracker/internal/domain/entities"
	"expensetracker/internal/domain/services"
	"expensetracker/pkg/logger"
)

const (
	ownerID   = "6f1c1d4e-2f5b-4a8e-9d0a-1b2c3d4e5f60"
	expenseID = "0b9a8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
)

var expenseCols = []string{"id", "user_id", "amount", "category", "date", "description", "created_at", "updated_at"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func day(s string) time.Time {
	d, _ := time.Parse(entities.DateLayout, s)
	return d
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Успешный поиск пользователя", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("a@x.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
				AddRow(ownerID, "Alice", "a@x.com", "hash", now))

		user, err := postgres.NewUserRepository(mock).FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, ownerID, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "hash", user.PasswordHash)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("missing@x.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}))

		user, err := postgres.NewUserRepository(mock).FindByEmail(ctx, "missing@x.com")
		assert.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("a@x.com").
			WillReturnError(errors.New("connection reset"))

		_, err := postgres.NewUserRepository(mock).FindByEmail(ctx, "a@x.com")
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	input := &entities.User{Name: "Alice", Email: "a@x.com", PasswordHash: "hash"}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs("Alice", "a@x.com", "hash").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
				AddRow(ownerID, "Alice", "a@x.com", "hash", now))

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, ownerID, created.ID)
		assert.Equal(t, now, created.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирующийся email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs("Alice", "a@x.com", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)
		assert.Nil(t, created)
		require.ErrorIs(t, err, services.ErrEmailAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Общая ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs("Alice", "a@x.com", "hash").
			WillReturnError(errors.New("database connection error"))

		_, err := postgres.NewUserRepository(mock).Create(ctx, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error creating user")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExpenseRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)
	input := entities.NewExpense{Amount: 20, Category: entities.CategoryFood, Date: day("2024-01-05"), Description: "lunch"}

	t.Run("Успешное создание расхода", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO expenses").
			WithArgs(ownerID, 20.0, "Food", day("2024-01-05"), "lunch").
			WillReturnRows(pgxmock.NewRows(expenseCols).
				AddRow(expenseID, ownerID, 20.0, "Food", day("2024-01-05"), "lunch", now, now))

		created, err := postgres.NewExpenseRepository(mock).Create(ctx, ownerID, input)
		require.NoError(t, err)
		assert.Equal(t, expenseID, created.ID)
		assert.Equal(t, entities.CategoryFood, created.Category)
		assert.Equal(t, day("2024-01-05"), created.Date)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO expenses").
			WithArgs(ownerID, 20.0, "Food", day("2024-01-05"), "lunch").
			WillReturnError(errors.New("insert failed"))

		_, err := postgres.NewExpenseRepository(mock).Create(ctx, ownerID, input)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExpenseRepository_List(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Фильтр по месяцу", func(t *testing.T) {
		mock := newMock(t)
		month, err := entities.ParseMonth("2024-05")
		require.NoError(t, err)
		r := month.Range()

		mock.ExpectQuery(`SELECT (.+) FROM expenses WHERE user_id = \$1 AND date >= \$2 AND date < \$3 ORDER BY date DESC`).
			WithArgs(ownerID, day("2024-05-01"), day("2024-06-01")).
			WillReturnRows(pgxmock.NewRows(expenseCols).
				AddRow("b", ownerID, 5.0, "Transport", day("2024-05-31"), "taxi", now, now).
				AddRow("a", ownerID, 20.0, "Food", day("2024-05-01"), "lunch", now, now))

		list, err := postgres.NewExpenseRepository(mock).List(ctx, ownerID, &r)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "b", list[0].ID)
		assert.Equal(t, entities.CategoryTransport, list[0].Category)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Без фильтра", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM expenses WHERE user_id = \$1 ORDER BY date DESC`).
			WithArgs(ownerID).
			WillReturnRows(pgxmock.NewRows(expenseCols))

		list, err := postgres.NewExpenseRepository(mock).List(ctx, ownerID, nil)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Некорректный владелец", func(t *testing.T) {
		mock := newMock(t)
		list, err := postgres.NewExpenseRepository(mock).List(ctx, "not-a-uuid", nil)
		require.NoError(t, err)
		assert.Empty(t, list)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка запроса", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM expenses").
			WithArgs(ownerID).
			WillReturnError(errors.New("query failed"))

		_, err := postgres.NewExpenseRepository(mock).List(ctx, ownerID, nil)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExpenseRepository_Update(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Обновление только суммы", func(t *testing.T) {
		mock := newMock(t)
		amount := 50.0
		mock.ExpectQuery("UPDATE expenses").
			WithArgs(expenseID, ownerID, 50.0, nil, nil, nil).
			WillReturnRows(pgxmock.NewRows(expenseCols).
				AddRow(expenseID, ownerID, 50.0, "Food", day("2024-01-05"), "lunch", now, now))

		updated, err := postgres.NewExpenseRepository(mock).Update(ctx, ownerID, expenseID, entities.ExpensePatch{Amount: &amount})
		require.NoError(t, err)
		assert.InDelta(t, 50.0, updated.Amount, 1e-9)
		assert.Equal(t, "lunch", updated.Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Чужой расход", func(t *testing.T) {
		mock := newMock(t)
		category := entities.CategoryOther
		mock.ExpectQuery("UPDATE expenses").
			WithArgs(expenseID, ownerID, nil, "Other", nil, nil).
			WillReturnRows(pgxmock.NewRows(expenseCols))

		_, err := postgres.NewExpenseRepository(mock).Update(ctx, ownerID, expenseID, entities.ExpensePatch{Category: &category})
		require.ErrorIs(t, err, entities.ErrExpenseNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Некорректный идентификатор", func(t *testing.T) {
		mock := newMock(t)
		_, err := postgres.NewExpenseRepository(mock).Update(ctx, ownerID, "42", entities.ExpensePatch{})
		require.ErrorIs(t, err, entities.ErrExpenseNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE expenses").
			WithArgs(expenseID, ownerID, nil, nil, nil, nil).
			WillReturnError(errors.New("update failed"))

		_, err := postgres.NewExpenseRepository(mock).Update(ctx, ownerID, expenseID, entities.ExpensePatch{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrExpenseNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExpenseRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM expenses").
			WithArgs(expenseID, ownerID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewExpenseRepository(mock).Delete(ctx, ownerID, expenseID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Расход не найден", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM expenses").
			WithArgs(expenseID, ownerID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewExpenseRepository(mock).Delete(ctx, ownerID, expenseID)
		require.ErrorIs(t, err, entities.ErrExpenseNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM expenses").
			WithArgs(expenseID, ownerID).
			WillReturnError(errors.New("delete failed"))

		err := postgres.NewExpenseRepository(mock).Delete(ctx, ownerID, expenseID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrExpenseNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExpenseRepository_Summarize(t *testing.T) {
	ctx := testContext(t)
	month, err := entities.ParseMonth("2024-01")
	require.NoError(t, err)

	t.Run("Группировка по категориям", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT category, SUM").
			WithArgs(ownerID, day("2024-01-01"), day("2024-02-01")).
			WillReturnRows(pgxmock.NewRows([]string{"category", "total"}).
				AddRow("Food", 30.0).
				AddRow("Transport", 5.0))

		totals, err := postgres.NewExpenseRepository(mock).Summarize(ctx, ownerID, month.Range())
		require.NoError(t, err)
		assert.Equal(t, []entities.CategoryTotal{
			{Category: entities.CategoryFood, Total: 30},
			{Category: entities.CategoryTransport, Total: 5},
		}, totals)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка запроса", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT category, SUM").
			WithArgs(ownerID, day("2024-01-01"), day("2024-02-01")).
			WillReturnError(errors.New("query failed"))

		_, err := postgres.NewExpenseRepository(mock).Summarize(ctx, ownerID, month.Range())
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExpenseRepository_Sum(t *testing.T) {
	ctx := testContext(t)

	t.Run("Сумма за всё время", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(ownerID).
			WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(125.5))

		total, err := postgres.NewExpenseRepository(mock).Sum(ctx, ownerID, nil)
		require.NoError(t, err)
		assert.InDelta(t, 125.5, total, 1e-9)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Сумма за год", func(t *testing.T) {
		mock := newMock(t)
		r := entities.YearRange(day("2024-07-01"))
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(ownerID, day("2024-01-01"), day("2025-01-01")).
			WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(0.0))

		total, err := postgres.NewExpenseRepository(mock).Sum(ctx, ownerID, &r)
		require.NoError(t, err)
		assert.Zero(t, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

package entities_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/domain/entities"
)

func day(s string) time.Time {
	t, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseMonthRange(t *testing.T) {
	tests := []struct {
		name     string
		month    string
		wantFrom string
		wantTo   string
	}{
		{"обычный месяц", "2024-05", "2024-05-01", "2024-06-01"},
		{"февраль високосного года", "2024-02", "2024-02-01", "2024-03-01"},
		{"декабрь", "2023-12", "2023-12-01", "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := entities.ParseMonth(tt.month)
			require.NoError(t, err)
			r := m.Range()
			assert.Equal(t, day(tt.wantFrom), r.From)
			assert.Equal(t, day(tt.wantTo), r.To)
			assert.Equal(t, tt.month, m.String())
		})
	}
}

func TestMonthBoundary(t *testing.T) {
	m, err := entities.ParseMonth("2024-05")
	require.NoError(t, err)
	r := m.Range()

	assert.True(t, r.Contains(day("2024-05-01")))
	assert.True(t, r.Contains(day("2024-05-31")))
	assert.False(t, r.Contains(day("2024-06-01")))
	assert.False(t, r.Contains(day("2024-04-30")))
}

func TestParseMonthInvalid(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-13", "24-05", "2024/05", "май"} {
		_, err := entities.ParseMonth(s)
		require.ErrorIs(t, err, entities.ErrInvalidMonth, s)
		require.ErrorIs(t, err, entities.ErrValidation, s)
	}
}

func TestParseMonthFilter(t *testing.T) {
	r, err := entities.ParseMonthFilter("")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = entities.ParseMonthFilter("all")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = entities.ParseMonthFilter("2024-01")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, day("2024-01-01"), r.From)

	_, err = entities.ParseMonthFilter("january")
	require.ErrorIs(t, err, entities.ErrInvalidMonth)
}

func TestYearRange(t *testing.T) {
	r := entities.YearRange(time.Date(2024, 7, 15, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, day("2024-01-01"), r.From)
	assert.Equal(t, day("2025-01-01"), r.To)
}

func TestParseDate(t *testing.T) {
	d, err := entities.ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-05"), d)

	d, err = entities.ParseDate("2024-01-05T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-05"), d)

	_, err = entities.ParseDate("")
	require.ErrorIs(t, err, entities.ErrMissingDate)

	_, err = entities.ParseDate("05.01.2024")
	require.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestNewExpenseValidate(t *testing.T) {
	valid := entities.NewExpense{
		Amount:      20,
		Category:    entities.CategoryFood,
		Date:        day("2024-01-05"),
		Description: "lunch",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*entities.NewExpense)
		want   error
	}{
		{"нулевая сумма", func(e *entities.NewExpense) { e.Amount = 0 }, entities.ErrInvalidAmount},
		{"отрицательная сумма", func(e *entities.NewExpense) { e.Amount = -1 }, entities.ErrInvalidAmount},
		{"NaN", func(e *entities.NewExpense) { e.Amount = math.NaN() }, entities.ErrInvalidAmount},
		{"бесконечность", func(e *entities.NewExpense) { e.Amount = math.Inf(1) }, entities.ErrInvalidAmount},
		{"сумма больше максимума", func(e *entities.NewExpense) { e.Amount = entities.MaxAmount + 0.01 }, entities.ErrInvalidAmount},
		{"огромная сумма", func(e *entities.NewExpense) { e.Amount = 1e17 }, entities.ErrInvalidAmount},
		{"неизвестная категория", func(e *entities.NewExpense) { e.Category = "Rent" }, entities.ErrInvalidCategory},
		{"пустая дата", func(e *entities.NewExpense) { e.Date = time.Time{} }, entities.ErrMissingDate},
		{"пустое описание", func(e *entities.NewExpense) { e.Description = "   " }, entities.ErrEmptyDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, entities.ErrValidation)
		})
	}
}

func TestExpensePatch(t *testing.T) {
	t.Run("обновление только суммы", func(t *testing.T) {
		amount := 50.004
		p := entities.ExpensePatch{Amount: &amount}.Normalize()
		require.NoError(t, p.Validate())
		assert.False(t, p.IsEmpty())
		assert.InDelta(t, 50.0, *p.Amount, 1e-9)
		assert.Nil(t, p.Category)
		assert.Nil(t, p.Date)
		assert.Nil(t, p.Description)
	})

	t.Run("явно некорректные поля отклоняются", func(t *testing.T) {
		zero := 0.0
		require.ErrorIs(t, entities.ExpensePatch{Amount: &zero}.Validate(), entities.ErrInvalidAmount)

		huge := 6e16
		require.ErrorIs(t, entities.ExpensePatch{Amount: &huge}.Validate(), entities.ErrInvalidAmount)

		empty := ""
		require.ErrorIs(t, entities.ExpensePatch{Description: &empty}.Validate(), entities.ErrEmptyDescription)

		bad := entities.Category("Rent")
		require.ErrorIs(t, entities.ExpensePatch{Category: &bad}.Validate(), entities.ErrInvalidCategory)
	})

	t.Run("пустой патч", func(t *testing.T) {
		p := entities.ExpensePatch{}
		assert.True(t, p.IsEmpty())
		require.NoError(t, p.Validate())
		assert.Equal(t, p, p.Normalize())
	})

	t.Run("нормализация даты", func(t *testing.T) {
		ts := time.Date(2024, 2, 3, 22, 10, 0, 0, time.UTC)
		p := entities.ExpensePatch{Date: &ts}.Normalize()
		assert.Equal(t, day("2024-02-03"), *p.Date)
	})
}

func TestParseCategory(t *testing.T) {
	for _, c := range entities.Categories() {
		got, err := entities.ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := entities.ParseCategory("food")
	require.ErrorIs(t, err, entities.ErrInvalidCategory)
}

func TestNormalizeRoundsAmount(t *testing.T) {
	n := entities.NewExpense{Amount: 0.001, Category: entities.CategoryOther, Date: day("2024-01-01"), Description: "x"}.Normalize()
	require.ErrorIs(t, n.Validate(), entities.ErrInvalidAmount)

	n = entities.NewExpense{Amount: 12.346, Category: entities.CategoryOther, Date: day("2024-01-01"), Description: " x "}.Normalize()
	require.NoError(t, n.Validate())
	assert.InDelta(t, 12.35, n.Amount, 1e-9)
	assert.Equal(t, "x", n.Description)
}

func TestValidateAmountUpperBound(t *testing.T) {
	require.NoError(t, entities.ValidateAmount(entities.MaxAmount))
	require.NoError(t, entities.ValidateAmount(0.01))
	require.ErrorIs(t, entities.ValidateAmount(10_000_000_000), entities.ErrInvalidAmount)

	n := entities.NewExpense{Amount: 9_999_999_999.994, Category: entities.CategoryOther, Date: day("2024-01-01"), Description: "x"}.Normalize()
	require.NoError(t, n.Validate())

	n = entities.NewExpense{Amount: 9_999_999_999.996, Category: entities.CategoryOther, Date: day("2024-01-01"), Description: "x"}.Normalize()
	require.ErrorIs(t, n.Validate(), entities.ErrInvalidAmount)
}

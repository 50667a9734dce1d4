package dto

import (
	"time"

	"expensetracker/internal/domain/entities"
)

// CreateExpenseRequest содержит данные нового расхода.
type CreateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
}

// ToEntity проверяет наличие полей и разбирает дату.
func (r *CreateExpenseRequest) ToEntity() (entities.NewExpense, error) {
	if r.Amount == nil || r.Category == "" || r.Date == "" || r.Description == "" {
		return entities.NewExpense{}, entities.ErrMissingExpenseData
	}

	date, err := entities.ParseDate(r.Date)
	if err != nil {
		return entities.NewExpense{}, err
	}

	return entities.NewExpense{
		Amount:      *r.Amount,
		Category:    entities.Category(r.Category),
		Date:        date,
		Description: r.Description,
	}, nil
}

// UpdateExpenseRequest содержит частичное обновление: отсутствующие поля не меняются.
type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

// ToPatch преобразует запрос в патч расхода.
func (r *UpdateExpenseRequest) ToPatch() (entities.ExpensePatch, error) {
	patch := entities.ExpensePatch{
		Amount:      r.Amount,
		Description: r.Description,
	}

	if r.Category != nil {
		category := entities.Category(*r.Category)
		patch.Category = &category
	}

	if r.Date != nil {
		date, err := entities.ParseDate(*r.Date)
		if err != nil {
			return entities.ExpensePatch{}, err
		}
		patch.Date = &date
	}

	return patch, nil
}

// Expense представляет расход в ответах API.
type Expense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromExpense преобразует сущность в DTO.
func FromExpense(e *entities.Expense) Expense {
	return Expense{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    string(e.Category),
		Date:        e.Date.Format(entities.DateLayout),
		Description: e.Description,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

// FromExpenses преобразует список сущностей; пустой список кодируется как [].
func FromExpenses(list []*entities.Expense) []Expense {
	out := make([]Expense, 0, len(list))
	for _, e := range list {
		out = append(out, FromExpense(e))
	}
	return out
}

// CategoryTotal - сумма расходов по категории.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// FromCategoryTotals преобразует итоги по категориям.
func FromCategoryTotals(list []entities.CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(list))
	for _, t := range list {
		out = append(out, CategoryTotal{Category: string(t.Category), Total: t.Total})
	}
	return out
}

// TotalsResponse содержит суммы за всё время, текущий месяц и год.
type TotalsResponse struct {
	Total float64 `json:"total"`
	Month float64 `json:"month"`
	Year  float64 `json:"year"`
}

// HealthResponse - состояние сервиса.
type HealthResponse struct {
	Status string `json:"status"`
}

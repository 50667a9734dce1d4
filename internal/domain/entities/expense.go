package entities

import (
	"math"
	"strings"
	"time"
)

// Category - категория расхода.
type Category string

// Допустимые категории.
const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryOther         Category = "Other"
)

// Categories возвращает все допустимые категории в порядке отображения.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryOther,
	}
}

// ParseCategory проверяет, что строка является допустимой категорией.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// DateLayout - формат даты расхода.
const DateLayout = time.DateOnly

// Expense представляет запись о расходе пользователя.
type Expense struct {
	ID          string
	UserID      string
	Amount      float64
	Category    Category
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense содержит данные для создания расхода.
type NewExpense struct {
	Amount      float64
	Category    Category
	Date        time.Time
	Description string
}

// Validate проверяет данные нового расхода.
func (n NewExpense) Validate() error {
	if err := ValidateAmount(n.Amount); err != nil {
		return err
	}
	if _, err := ParseCategory(string(n.Category)); err != nil {
		return err
	}
	if n.Date.IsZero() {
		return ErrMissingDate
	}
	return ValidateDescription(n.Description)
}

// Normalize округляет сумму до копеек, приводит дату к полуночи UTC и обрезает описание.
func (n NewExpense) Normalize() NewExpense {
	n.Amount = RoundAmount(n.Amount)
	n.Date = TruncateDay(n.Date)
	n.Description = strings.TrimSpace(n.Description)
	return n
}

// ExpensePatch описывает частичное обновление: nil означает "не менять".
type ExpensePatch struct {
	Amount      *float64
	Category    *Category
	Date        *time.Time
	Description *string
}

// IsEmpty сообщает, что патч не меняет ни одного поля.
func (p ExpensePatch) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Date == nil && p.Description == nil
}

// Validate проверяет заданные поля патча по тем же правилам, что и при создании.
func (p ExpensePatch) Validate() error {
	if p.Amount != nil {
		if err := ValidateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if _, err := ParseCategory(string(*p.Category)); err != nil {
			return err
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrMissingDate
	}
	if p.Description != nil {
		return ValidateDescription(*p.Description)
	}
	return nil
}

// Normalize приводит заданные поля к каноническому виду.
func (p ExpensePatch) Normalize() ExpensePatch {
	if p.Amount != nil {
		a := RoundAmount(*p.Amount)
		p.Amount = &a
	}
	if p.Date != nil {
		d := TruncateDay(*p.Date)
		p.Date = &d
	}
	if p.Description != nil {
		s := strings.TrimSpace(*p.Description)
		p.Description = &s
	}
	return p
}

// CategoryTotal - сумма расходов по одной категории.
type CategoryTotal struct {
	Category Category
	Total    float64
}

// Totals - суммы расходов за всё время, текущий месяц и текущий год.
type Totals struct {
	Total float64
	Month float64
	Year  float64
}

// MaxAmount - наибольшая сумма одного расхода, помещается в NUMERIC(12,2).
const MaxAmount = 9_999_999_999.99

// ValidateAmount проверяет, что сумма конечна, положительна и не больше MaxAmount.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 || amount > MaxAmount {
		return ErrInvalidAmount
	}
	return nil
}

// RoundAmount округляет сумму до двух знаков после запятой.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ValidateDescription проверяет, что описание не пустое.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// TruncateDay отбрасывает время суток, оставляя календарный день в UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD или RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return TruncateDay(t), nil
}

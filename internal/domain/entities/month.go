package entities

import (
	"strings"
	"time"
)

// MonthAll - значение фильтра, означающее все месяцы.
const MonthAll = "all"

const monthLayout = "2006-01"

// Month - календарный месяц.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth разбирает строку YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf возвращает месяц, содержащий момент t (в UTC).
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// Range возвращает полуинтервал [первое число месяца, первое число следующего месяца).
func (m Month) Range() DateRange {
	from := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}

// DateRange - полуинтервал дат [From, To).
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains сообщает, попадает ли дата в диапазон.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// YearRange возвращает диапазон календарного года, содержащего t.
func YearRange(t time.Time) DateRange {
	from := time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(1, 0, 0)}
}

// ParseMonthFilter разбирает фильтр списка: пустая строка и "all" означают отсутствие фильтра.
func ParseMonthFilter(s string) (*DateRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, MonthAll) {
		return nil, nil
	}
	m, err := ParseMonth(s)
	if err != nil {
		return nil, err
	}
	r := m.Range()
	return &r, nil
}

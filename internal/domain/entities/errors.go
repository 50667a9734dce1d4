package entities

import (
	"errors"
	"fmt"
)

// ErrValidation оборачивает все ошибки некорректных входных данных.
var ErrValidation = errors.New("validation failed")

// Ошибки валидации расходов.
var (
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be a positive number not greater than 9999999999.99", ErrValidation)
	ErrInvalidCategory    = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrEmptyDescription   = fmt.Errorf("%w: description cannot be empty", ErrValidation)
	ErrMissingDate        = fmt.Errorf("%w: date is required", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrInvalidMonth       = fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
	ErrMonthRequired      = fmt.Errorf("%w: month is required", ErrValidation)
	ErrMissingExpenseData = fmt.Errorf("%w: amount, category, date and description are required", ErrValidation)
)

// ErrExpenseNotFound возвращается, когда расход не существует или принадлежит другому пользователю.
var ErrExpenseNotFound = errors.New("expense not found")

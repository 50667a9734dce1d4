package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"expensetracker/internal/domain/entities"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockExpenseRepository struct {
	mock.Mock
}

func (m *mockExpenseRepository) Create(ctx context.Context, userID string, expense entities.NewExpense) (*entities.Expense, error) {
	args := m.Called(ctx, userID, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Expense), args.Error(1)
}

func (m *mockExpenseRepository) List(ctx context.Context, userID string, period *entities.DateRange) ([]*entities.Expense, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Expense), args.Error(1)
}

func (m *mockExpenseRepository) Update(ctx context.Context, userID, id string, patch entities.ExpensePatch) (*entities.Expense, error) {
	args := m.Called(ctx, userID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Expense), args.Error(1)
}

func (m *mockExpenseRepository) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockExpenseRepository) Summarize(ctx context.Context, userID string, period entities.DateRange) ([]entities.CategoryTotal, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CategoryTotal), args.Error(1)
}

func (m *mockExpenseRepository) Sum(ctx context.Context, userID string, period *entities.DateRange) (float64, error) {
	args := m.Called(ctx, userID, period)
	return args.Get(0).(float64), args.Error(1)
}

type mockSummaryCache struct {
	mock.Mock
}

func (m *mockSummaryCache) Generation(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSummaryCache) GetSummary(ctx context.Context, userID string, generation int64, month entities.Month) ([]entities.CategoryTotal, error) {
	args := m.Called(ctx, userID, generation, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CategoryTotal), args.Error(1)
}

func (m *mockSummaryCache) SetSummary(ctx context.Context, userID string, generation int64, month entities.Month, totals []entities.CategoryTotal) error {
	return m.Called(ctx, userID, generation, month, totals).Error(0)
}

func (m *mockSummaryCache) Invalidate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSummaryCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSummaryCache) Close() error {
	return m.Called().Error(0)
}

// Package cache определяет порт кэша сводок по категориям.
package cache

import (
	"context"
	"errors"

	"expensetracker/internal/domain/entities"
)

// ErrCacheMiss возвращается, когда сводки нет в кэше.
var ErrCacheMiss = errors.New("cache miss")

// SummaryCache хранит вычисленные сводки по владельцу, поколению и месяцу.
// Поколение нужно читать до обращения к хранилищу: запись, выполненная
// после чтения, увеличивает поколение, и устаревшая сводка больше не выдаётся.
type SummaryCache interface {
	Generation(ctx context.Context, userID string) (int64, error)

	GetSummary(ctx context.Context, userID string, generation int64, month entities.Month) ([]entities.CategoryTotal, error)

	SetSummary(ctx context.Context, userID string, generation int64, month entities.Month, totals []entities.CategoryTotal) error

	// Invalidate увеличивает поколение владельца.
	Invalidate(ctx context.Context, userID string) error

	Ping(ctx context.Context) error

	Close() error
}

package cache

import (
	"context"

	"expensetracker/internal/domain/entities"
	"expensetracker/internal/ports/cache"
)

// NoopSummaryCache используется, когда Redis отключён: всегда промах.
type NoopSummaryCache struct{}

// NewNoopSummaryCache создает кэш-заглушку.
func NewNoopSummaryCache() cache.SummaryCache {
	return NoopSummaryCache{}
}

// Generation всегда возвращает 0.
func (NoopSummaryCache) Generation(context.Context, string) (int64, error) { return 0, nil }

// GetSummary всегда возвращает cache.ErrCacheMiss.
func (NoopSummaryCache) GetSummary(context.Context, string, int64, entities.Month) ([]entities.CategoryTotal, error) {
	return nil, cache.ErrCacheMiss
}

// SetSummary ничего не делает.
func (NoopSummaryCache) SetSummary(context.Context, string, int64, entities.Month, []entities.CategoryTotal) error {
	return nil
}

// Invalidate ничего не делает.
func (NoopSummaryCache) Invalidate(context.Context, string) error { return nil }

// Ping всегда успешен.
func (NoopSummaryCache) Ping(context.Context) error { return nil }

// Close ничего не делает.
func (NoopSummaryCache) Close() error { return nil }

// Package cache содержит реализации кэша сводок по категориям.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"expensetracker/internal/domain/entities"
	"expensetracker/internal/ports/cache"
	"expensetracker/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGeneration = "generation"
	LogMethodGet        = "get"
	LogMethodSet        = "set"
	LogMethodInvalidate = "invalidate"

	ErrorFailedToGet        = "failed to get summary from redis"
	ErrorFailedToSet        = "failed to set summary in redis"
	ErrorFailedToInvalidate = "failed to bump summary generation"
	ErrorFailedToDecode     = "failed to decode cached summary"
	ErrorFailedToClose      = "failed to close redis connection"

	defaultPrefix = "expenses"
	defaultTTL    = 10 * time.Minute
)

type summaryEntry struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// RedisSummaryCache реализует cache.SummaryCache поверх Redis.
type RedisSummaryCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSummaryCache создает кэш сводок поверх готового клиента.
func NewRedisSummaryCache(client *redis.Client, prefix string, ttl time.Duration) cache.SummaryCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisSummaryCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisSummaryCache) generationKey(userID string) string {
	return fmt.Sprintf("%s:gen:%s", c.prefix, userID)
}

func (c *RedisSummaryCache) summaryKey(userID string, generation int64, month entities.Month) string {
	return fmt.Sprintf("%s:summary:%s:%d:%s", c.prefix, userID, generation, month)
}

// Generation возвращает текущее поколение данных владельца; отсутствие ключа означает 0.
func (c *RedisSummaryCache) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logger.Log(ctx).Warn(ctx, ErrorFailedToGet, zap.String("method", LogMethodGeneration), zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return gen, nil
}

// GetSummary возвращает сводку или cache.ErrCacheMiss.
func (c *RedisSummaryCache) GetSummary(ctx context.Context, userID string, generation int64, month entities.Month) ([]entities.CategoryTotal, error) {
	key := c.summaryKey(userID, generation, month)
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrCacheMiss
		}
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var entries []summaryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	totals := make([]entities.CategoryTotal, 0, len(entries))
	for _, e := range entries {
		totals = append(totals, entities.CategoryTotal{Category: entities.Category(e.Category), Total: e.Total})
	}
	return totals, nil
}

// SetSummary сохраняет сводку под заданным поколением.
func (c *RedisSummaryCache) SetSummary(ctx context.Context, userID string, generation int64, month entities.Month, totals []entities.CategoryTotal) error {
	key := c.summaryKey(userID, generation, month)

	entries := make([]summaryEntry, 0, len(totals))
	for _, t := range totals {
		entries = append(entries, summaryEntry{Category: string(t.Category), Total: t.Total})
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorFailedToSet, zap.String("method", LogMethodSet), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Invalidate увеличивает поколение владельца; старые сводки истекают по TTL.
func (c *RedisSummaryCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Incr(ctx, c.generationKey(userID)).Err(); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorFailedToInvalidate, zap.String("method", LogMethodInvalidate), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}
	return nil
}

// Ping проверяет доступность Redis.
func (c *RedisSummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает соединение с Redis.
func (c *RedisSummaryCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"expensetracker/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"", "debug", "info", "warn", "error", "DEBUG"}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)

				assert.NotPanics(t, func() {
					log.Debug(context.Background(), "debug message")
					log.Info(context.Background(), "info message", zap.String("key", "value"))
				})
			})
		}
	}

	t.Run("invalid level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "loud")
		require.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("logger stored in context is returned", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		type otherKey struct{}
		ctx := logger.NewContext(context.Background(), testLogger)
		ctx = context.WithValue(ctx, otherKey{}, "value")

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("missing logger is reported", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	t.Run("context logger has priority over global", func(t *testing.T) {
		ctxLogger := logger.NewNop()
		globalLogger := logger.NewNop()
		logger.SetGlobalLogger(globalLogger)

		got := logger.Log(logger.NewContext(context.Background(), ctxLogger))
		assert.Same(t, ctxLogger, got)
	})

	t.Run("global logger is used without context logger", func(t *testing.T) {
		globalLogger := logger.NewNop()
		logger.SetGlobalLogger(globalLogger)

		assert.Same(t, globalLogger, logger.Log(context.Background()))
	})

	t.Run("fallback logger is a singleton", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		first := logger.Log(context.Background())
		second := logger.Log(context.Background())
		require.NotNil(t, first)
		assert.Same(t, first, second)
	})
}

func TestInitGlobalLoggerWithLevel(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
	second := logger.Log(context.Background())

	assert.Same(t, first, second, "second init must keep the existing logger")
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id is kept", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			seen[logger.GenerateRequestID()] = struct{}{}
		}
		assert.Len(t, seen, 100)
	})

	t.Run("WithRequestID", func(t *testing.T) {
		log := logger.NewNop()

		assert.Same(t, log, log.WithRequestID(context.Background()))
		assert.NotSame(t, log, log.WithRequestID(logger.NewRequestIDContext(context.Background(), "x")))
	})
}

func TestUserID(t *testing.T) {
	_, ok := logger.GetUserID(context.Background())
	assert.False(t, ok)

	ctx := logger.NewUserIDContext(context.Background(), "user-42")
	id, ok := logger.GetUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-42", id)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"expensetracker/internal/adapters/cache"
	httpServer "expensetracker/internal/adapters/http"
	"expensetracker/internal/adapters/http/health"
	"expensetracker/internal/adapters/services"
	"expensetracker/internal/app"
	"expensetracker/internal/config"
	"expensetracker/internal/db"
	cachePorts "expensetracker/internal/ports/cache"
	pkgredis "expensetracker/pkg/db/redis"
	"expensetracker/pkg/logger"
	"expensetracker/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "EXPENSES_LOGGER_MODE"
	EnvLoggerLevel = "EXPENSES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "expenses service started"
	LogServiceShutdownDone = "expenses service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing summary cache"
	LogCacheDisabled       = "summary cache disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogClosingDatabase     = "closing database"
	LogClosingCache        = "closing summary cache"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		store, err := db.Open(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		checks := []health.Check{{Name: store.Driver(), Checker: store}}

		var summaryCache cachePorts.SummaryCache = cache.NewNoopSummaryCache()
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			client, err := pkgredis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				_ = store.Close(ctx)
				exitCode = 1
				return
			}
			summaryCache = cache.NewRedisSummaryCache(client, cfg.Redis.KeyPrefix, cfg.Redis.SummaryTTL)
			checks = append(checks, health.Check{Name: "redis", Checker: summaryCache})
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.BCryptCost)
		authUseCase := app.NewAuthUseCase(store.Users(), serviceFactory.PasswordService(), serviceFactory.TokenService())
		expenseUseCase := app.NewExpenseUseCase(store.Expenses(), summaryCache)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := httpServer.NewApp(&cfg.HTTP)
		httpServer.SetupRouter(fiberApp, authUseCase, expenseUseCase, httpServer.RouterOptions{
			CORSOrigins:  cfg.HTTP.GetCORSOrigins(),
			HealthChecks: checks,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Хранилища закрываются только после остановки HTTP сервера.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := fiberApp.ShutdownWithContext(ctx)

				log.Info(ctx, LogClosingCache)
				cacheErr := summaryCache.Close()

				log.Info(ctx, LogClosingDatabase)
				return errors.Join(httpErr, cacheErr, store.Close(ctx))
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

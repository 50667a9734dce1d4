// Package config загружает структуры конфигурации из окружения и .env файлов.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"expensetracker/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded"
	msgEnvFileSkipped       = "env file not loaded"

	errFailedLoadConfiguration = "failed to load configuration"
)

// Load читает переменные окружения в структуру T по тегам cleanenv.
// Перед этим подгружаются envFiles (отсутствующие файлы пропускаются);
// уже заданные переменные окружения не перезаписываются.
func Load[T any](ctx context.Context, service string, envFiles ...string) (*T, error) {
	log := logger.Log(ctx).With(zap.String("service", service))
	log.Info(ctx, msgLoadingConfiguration, zap.Strings("env_files", envFiles))

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warn(ctx, msgEnvFileSkipped, zap.String("path", file), zap.Error(err))
			}
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

// Usage возвращает описание всех переменных окружения структуры T.
func Usage[T any](header string) string {
	var cfg T
	text, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return header
	}
	return text
}

package main

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"aramesh-server/services/therapy-api/internal/config"
	"aramesh-server/services/therapy-api/internal/domain/user"
	"aramesh-server/services/therapy-api/internal/infrastructure/database"
	"aramesh-server/services/therapy-api/internal/infrastructure/logger"
)

func provideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

func provideGormDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func provideUserService(cfg *config.Config, repo user.Repository) *user.Service {
	return user.NewService(repo, cfg.JWTSecret, cfg.TokenLifetime)
}

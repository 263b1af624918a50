package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fitwork/internal/config"
	"fitwork/internal/database"
	"fitwork/internal/database/migration"
	dbpostgres "fitwork/internal/database/postgres"
	"fitwork/internal/infrastructure/cache"
)

// Container holds process-wide infrastructure: config, logger, the database
// pool and the redis wrapper.
type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	Redis  *cache.Redis
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: cfg.Database.MigrationsDir}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  cache.NewRedis(cfg.Redis, log),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

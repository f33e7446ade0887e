package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tivit/users-api/internal/api"
	"github.com/tivit/users-api/internal/core/domain"
	"github.com/tivit/users-api/internal/infrastructure/config"
	mongodb "github.com/tivit/users-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tivit/users-api/internal/infrastructure/db/redis"
	"github.com/tivit/users-api/pkg/logger"
)

// Initial accounts provisioned on first boot, matching the seed data the
// downstream fake API knows about.
var seedUsers = []mongodb.SeedUser{
	{Username: "user", Password: "L0XuwPOdS5U", Role: domain.RoleUser},
	{Username: "admin", Password: "JKSipm0YH", Role: domain.RoleAdmin},
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureSeed(ctx, seedUsers); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	e := api.NewRouter(cfg, db, rdb, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

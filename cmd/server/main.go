package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fullstack/libreria-system/internal/api"
	"github.com/fullstack/libreria-system/internal/infrastructure/config"
	mongodb "github.com/fullstack/libreria-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fullstack/libreria-system/internal/infrastructure/db/redis"
	"github.com/fullstack/libreria-system/internal/infrastructure/hash"
	"github.com/fullstack/libreria-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongodb client")
		}
	}()

	// The unique email index is the authoritative uniqueness guard; the
	// service cannot start without it.
	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure account indexes")
	}

	// Redis is optional: without it the catalog cache becomes a passthrough.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without catalog cache")
		rdb = nil
	} else {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}()
	}

	hasher := hash.NewBcryptHasher(cfg.BcryptCost)

	e := api.NewRouter(db, rdb, hasher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

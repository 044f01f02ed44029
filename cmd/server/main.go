// Command server runs the portal HTTP server.
//
// @title           Team Portal
// @version         1.0
// @description     Session-authenticated web portal: login, protected home page, logout.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamhub/portal/internal/api"
	"github.com/teamhub/portal/internal/core/service"
	mongodb "github.com/teamhub/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/teamhub/portal/internal/infrastructure/db/redis"
	"github.com/teamhub/portal/internal/pkg/config"
	"github.com/teamhub/portal/internal/session"
	"github.com/teamhub/portal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	var rdb *redis.Client
	var store session.Store = session.NewMemoryStore()
	if cfg.Session.Store == "redis" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
		store = session.NewRedisStore(rdb)
	}

	sessions := session.NewManager(store, cfg.Session.TTL)
	authService := service.NewAuthService(userRepo)

	e, err := api.NewRouter(authService, sessions, db, rdb, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("session_store", cfg.Session.Store).Msg("portal listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/routeai/admin-console/internal/api"
	mongodb "github.com/routeai/admin-console/internal/infrastructure/db/mongo"
	redisdb "github.com/routeai/admin-console/internal/infrastructure/db/redis"
	"github.com/routeai/admin-console/internal/infrastructure/directory"
	"github.com/routeai/admin-console/internal/infrastructure/queue"
	"github.com/routeai/admin-console/internal/pkg/config"
	"github.com/routeai/admin-console/pkg/logger"
)

// @title         RouteAI Admin Console API
// @version       1.0
// @description   Operator console for managing platform users, roles, and prepaid credits.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{
		Directory: directory.NewClient(
			cfg.UserService.BaseURL,
			cfg.UserService.ServiceToken,
			cfg.UserService.Timeout,
			log,
		),
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	}

	if cfg.Mongo.Enabled {
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

		repo := mongodb.NewAuditRepository(db)
		recorder := queue.NewRecorder(0, repo, log)
		recorder.Start(ctx)

		deps.Audit = repo
		deps.Recorder = recorder
		deps.Mongo = db
	}

	if cfg.Redis.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()

		deps.Guard = redisdb.NewSubmitGuard(rdb)
		deps.Redis = rdb
	}

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("admin console listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// Entry point for the questions API: loads configuration, connects the
// backing stores, starts the audit pipeline and serves HTTP until the
// process receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questionsapp/questions-api/internal/api"
	"github.com/questionsapp/questions-api/internal/core/service"
	"github.com/questionsapp/questions-api/internal/infrastructure/config"
	mongostore "github.com/questionsapp/questions-api/internal/infrastructure/db/mongo"
	redisstore "github.com/questionsapp/questions-api/internal/infrastructure/db/redis"
	"github.com/questionsapp/questions-api/internal/infrastructure/queue"
	"github.com/questionsapp/questions-api/internal/token"
	"github.com/questionsapp/questions-api/pkg/logger"
)

// @title           Questions API
// @version         1.0
// @description     JWT authentication and role-gated questions platform.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	identityStore := mongostore.NewIdentityStore(db)
	if err := identityStore.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	codec := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	auditService := service.NewAuditService(mongostore.NewAuditRepository(db), logger.For("audit"))
	dispatcher := queue.NewDispatcher(0, auditService, logger.For("dispatcher"))
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, codec, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("questions API listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

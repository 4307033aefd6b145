// Command server runs the hotel management HTTP API.
//
// @title                       Hotel Management API
// @version                     1.0
// @description                 Staff accounts, tokens and room administration for a hotel front desk.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/frontdesk/hotel-system/internal/api"
	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/service"
	"github.com/frontdesk/hotel-system/internal/infrastructure/db/mongo"
	"github.com/frontdesk/hotel-system/internal/infrastructure/db/redis"
	"github.com/frontdesk/hotel-system/internal/infrastructure/http/handlers"
	"github.com/frontdesk/hotel-system/internal/pkg/config"
	"github.com/frontdesk/hotel-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "hotel-api",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "hotel-api",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	userRepo := mongo.NewUserRepository(db)
	roomRepo := mongo.NewRoomRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, roomRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	users := service.NewUserService(userRepo, tokens, service.DefaultAdmin{
		Username:   cfg.Auth.DefaultAdminUsername,
		Password:   cfg.Auth.DefaultAdminPassword,
		Department: domain.Department(cfg.Auth.DefaultAdminDepartment),
	}, log)
	rooms := service.NewRoomService(roomRepo, log)

	if err := users.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin")
	}

	e := api.NewRouter(api.Dependencies{
		Users:       users,
		Rooms:       rooms,
		Tokens:      tokens,
		UserRepo:    userRepo,
		Idempotency: redis.NewIdempotencyStore(rdb, cfg.Idempotency.TTL),
		Readiness:   []handlers.Dependency{handlers.MongoDependency(db), handlers.RedisDependency(rdb)},
		Logger:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("server exited")
}

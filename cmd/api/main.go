// Package main is the entrypoint for the iNest API server.
//
// @title        iNest API
// @version      1.0
// @description  Community services directory: users, bakers, laundry, medicals and WhistleNest reports.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-envconfig"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/inest/inest-backend/internal/api"
	"github.com/inest/inest-backend/internal/api/handler"
	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/core/ports"
	"github.com/inest/inest-backend/internal/core/service"
	"github.com/inest/inest-backend/internal/infrastructure/db/mongo"
	"github.com/inest/inest-backend/internal/infrastructure/db/redis"
	"github.com/inest/inest-backend/internal/pkg/config"
	"github.com/inest/inest-backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, envconfig.OsLookuper())
	stop()
	if err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run wires and serves the API until ctx is cancelled. The logger is always
// initialised when run returns, so callers may log its error.
func run(ctx context.Context, env envconfig.Lookuper) error {
	cfg, err := config.LoadWith(ctx, env)
	if err != nil {
		// Logger is not configured yet.
		logger.Init(logger.Options{})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "inest-api",
	})

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	repos := mongo.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	var throttle ports.LoginThrottle
	if cfg.Auth.LoginMaxFailures > 0 {
		throttle = redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow)
	}

	// --- Services ---
	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(repos.Users, tokens, throttle, cfg.Auth.BcryptCost, logger.Component("auth")),
		Verifier: tokens,
		Bakers:   service.NewListingService[domain.Baker](repos.Bakers, "Baker", logger.Component("listings")),
		Laundry:  service.NewListingService[domain.Laundry](repos.Laundry, "Laundry", logger.Component("listings")),
		Medicals: service.NewListingService[domain.Medical](repos.Medicals, "Medical", logger.Component("listings")),
		Reports:  service.NewReportService(repos.Reports, logger.Component("whistlenest")),
		Health:   healthChecks(client, rdb),
		Logger:   logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// healthChecks wires the readiness probes to the live clients.
func healthChecks(client *mongodriver.Client, rdb *goredis.Client) map[string]handler.Pinger {
	return map[string]handler.Pinger{
		"mongodb": handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) }),
		"redis":   handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
	}
}

// @title        Ecom Auth API
// @version      1.0
// @description  Authentication, session and role management for the ecom backend.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/99minutos/ecom-api/internal/api"
	"github.com/99minutos/ecom-api/internal/api/handler"
	"github.com/99minutos/ecom-api/internal/core/service"
	"github.com/99minutos/ecom-api/internal/infrastructure/config"
	mongodb "github.com/99minutos/ecom-api/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/ecom-api/internal/infrastructure/db/redis"
	"github.com/99minutos/ecom-api/internal/infrastructure/hasher"
	"github.com/99minutos/ecom-api/internal/infrastructure/queue"
	"github.com/99minutos/ecom-api/internal/infrastructure/token"
	"github.com/99minutos/ecom-api/pkg/logger"
)

const appName = "ecom-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: appName,
	})
	if cfg.IsDevelopment() {
		figure.NewFigure(appName, "cybermedium", true).Print()
		fmt.Println()
	}

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	tokens, err := token.NewManager(token.Config{
		AccessSecret:  cfg.Token.AccessSecret,
		AccessTTL:     cfg.Token.AccessExpireIn.Duration(),
		RefreshSecret: cfg.Token.RefreshSecret,
		RefreshTTL:    cfg.Token.RefreshExpireIn.Duration(),
	})
	if err != nil {
		return err
	}

	// --- Audit pipeline ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	authService := service.NewAuthService(
		mongodb.NewUserRepository(db),
		hasher.NewBcrypt(cfg.BcryptCost),
		tokens,
		redisdb.NewDenylist(rdb),
		dispatcher,
		log,
	)
	roleService := service.NewRoleService(mongodb.NewRoleRepository(db), dispatcher, log)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		RoleService: roleService,
		Cookies: handler.CookieConfig{
			Secure:        !cfg.IsDevelopment(),
			AccessMaxAge:  cfg.Token.CookieMaxAge,
			RefreshMaxAge: cfg.Token.RefreshExpireIn.Duration(),
		},
		RoleManagePermission: cfg.RoleManagePermission,
		ReadinessChecks: map[string]handler.CheckFunc{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	return shutdown(e.Shutdown, log)
}

func shutdown(fn func(context.Context) error, log zerolog.Logger) error {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

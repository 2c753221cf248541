// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/campaign-studio/internal/ad"
	"github.com/carterperez-dev/campaign-studio/internal/admin"
	"github.com/carterperez-dev/campaign-studio/internal/advertiser"
	"github.com/carterperez-dev/campaign-studio/internal/audit"
	"github.com/carterperez-dev/campaign-studio/internal/auth"
	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/campaign"
	"github.com/carterperez-dev/campaign-studio/internal/config"
	"github.com/carterperez-dev/campaign-studio/internal/core"
	"github.com/carterperez-dev/campaign-studio/internal/health"
	"github.com/carterperez-dev/campaign-studio/internal/middleware"
	"github.com/carterperez-dev/campaign-studio/internal/role"
	"github.com/carterperez-dev/campaign-studio/internal/server"
	"github.com/carterperez-dev/campaign-studio/internal/user"
	"github.com/carterperez-dev/campaign-studio/migrations"
)

const (
	apiPrefix  = "/api"
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.AutoMigrate {
		if err := migrateUp(cfg.Database.URL, logger); err != nil {
			return err
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized", "algorithm", tokens.Algorithm())

	cipher, err := core.NewCipher(cfg.Encryption.Key)
	if err != nil {
		return err
	}

	policy := authz.DefaultPolicy

	auditRepo := audit.NewRepository(db.DB)
	recorder := audit.NewRecorder(auditRepo, logger, cfg.Audit)
	auditHandler := audit.NewHandler(auditRepo)

	userSvc := user.NewService(user.NewRepository(db.DB), policy)
	userHandler := user.NewHandler(userSvc)

	roleHandler := role.NewHandler(role.NewRepository(db.DB))

	authSvc := auth.NewService(tokens, userSvc, auth.NewRedisRevocationStore(redis.Client))
	authHandler := auth.NewHandler(authSvc)

	campaignSvc := campaign.NewService(campaign.NewRepository(db.DB), policy)
	campaignHandler := campaign.NewHandler(campaignSvc)

	adSvc := ad.NewService(ad.NewRepository(db.DB), campaignSvc, policy)
	adHandler := ad.NewHandler(adSvc)

	advertiserSvc := advertiser.NewService(advertiser.NewRepository(db.DB), cipher, policy)
	advertiserHandler := advertiser.NewHandler(advertiserSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Counts:     admin.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Audit:      recorder,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	globalLimit := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		FailOpen: true,
	})

	strictLimit := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(10, 5),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	})

	authenticator := middleware.Authenticator(authSvc, userSvc)
	gate := func(res authz.Resource, op authz.Operation) func(http.Handler) http.Handler {
		return middleware.Require(policy, res, op)
	}

	router.Route(apiPrefix, func(r chi.Router) {
		r.Use(globalLimit.Handler)
		r.Use(audit.Middleware(recorder, audit.MiddlewareConfig{
			Prefix: apiPrefix,
			ExcludePaths: []string{
				apiPrefix + "/auth/login",
				apiPrefix + "/auth/refresh",
				apiPrefix + "/auth/logout",
			},
			Logger: logger,
		}))

		authHandler.RegisterRoutes(r, authenticator, strictLimit.Handler)
		userHandler.RegisterRoutes(r, authenticator)
		roleHandler.RegisterRoutes(r, authenticator)
		campaignHandler.RegisterRoutes(r, authenticator, gate, adHandler.CampaignRoutes(gate))
		adHandler.RegisterRoutes(r, authenticator, gate)
		advertiserHandler.RegisterRoutes(r, authenticator, gate)
		adminHandler.RegisterRoutes(r, authenticator, gate, auditHandler.RegisterRoutes)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := recorder.Close(shutdownCtx); err != nil {
		logger.Error("audit recorder close error", "error", err,
			"dropped", recorder.Dropped(),
		)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func migrateUp(databaseURL string, logger *slog.Logger) error {
	migrator, err := core.NewMigrator(migrations.FS, databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	if err := migrator.Up(); err != nil {
		return err
	}

	version, _, err := migrator.Version()
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "version", version)
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

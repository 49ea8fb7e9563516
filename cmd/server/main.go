package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eldtechnologies/ticketbot/internal/api"
	"github.com/eldtechnologies/ticketbot/internal/config"
	"github.com/eldtechnologies/ticketbot/internal/handlers"
	"github.com/eldtechnologies/ticketbot/internal/jira"
	"github.com/eldtechnologies/ticketbot/internal/store"
)

func main() {
	// Bootstrap logger until configuration is known
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			logger.Warn().Err(err).Msg("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()

	patternStore, redisClient, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Backend).Msg("storage connection failed")
	}
	defer patternStore.Close()

	// Optional Redis for rate limiting when patterns live elsewhere
	if redisClient == nil && cfg.RedisURL != "" {
		redisStore, err := store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisStore.Close()
		redisClient = redisStore.Client()
		logger.Info().Msg("connected to Redis")
	}

	instrumented := store.Instrument(patternStore)
	recognizer := jira.NewRecognizer(cfg.BotNick, cfg.Template, instrumented, logger)
	if err := recognizer.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("loading ticket patterns failed")
	}
	for _, prefix := range cfg.SeedPatterns {
		if _, err := recognizer.Register(ctx, prefix); err != nil {
			logger.Fatal().Err(err).Str("prefix", prefix).Msg("seeding ticket pattern failed")
		}
	}

	dispatcher := jira.NewDispatcher(recognizer, logger)
	h := handlers.NewHandler(instrumented, recognizer, dispatcher, logger)

	// Create router
	router := api.NewRouter(logger, h, api.RouterConfig{
		RedisClient:        redisClient,
		RateLimitWhitelist: cfg.RateLimitWhitelist,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("nick", cfg.BotNick).
			Str("backend", cfg.Backend).
			Msg("starting ticketbot")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

// openStore connects the configured pattern backend. The Redis client is
// returned when the backend is Redis so it can be shared.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.PatternStore, *redis.Client, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		logger.Info().Msg("running database migrations...")
		if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("migrations completed")

		s, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("connected to PostgreSQL")
		return s, nil, nil

	case config.BackendRedis:
		s, err := store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("connected to Redis")
		return s, s.Client(), nil

	default:
		s, err := store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("opened SQLite")
		return s, nil, nil
	}
}

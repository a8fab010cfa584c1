package main

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/srgjo27/launch_booking/internal/adapter/cache/redis"
	"github.com/srgjo27/launch_booking/internal/adapter/handler"
	"github.com/srgjo27/launch_booking/internal/adapter/repository/flatfile"
	"github.com/srgjo27/launch_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/ports"
	"github.com/srgjo27/launch_booking/internal/core/services"
	"github.com/srgjo27/launch_booking/internal/platform/config"
	"github.com/srgjo27/launch_booking/internal/platform/database"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFormat, openLog(cfg.LogFile))
	defer logger.Close()

	ctx := logger.WithSession(context.Background())
	if err := run(ctx, cfg); err != nil {
		logger.Fatal("launch booking stopped", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.WithContext(ctx)
	log.Info("starting", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	repos, closeRepos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	cache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	state := services.NewState(repos, domain.NewTimeSlotConfig(cfg.TimeSlots))
	if err := state.Load(ctx); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	bookings := services.NewBookingService(state, services.NewAvailabilityService(state, cache))
	console := handler.NewConsole(handler.Services{
		State:         state,
		Users:         services.NewUserService(state),
		Registrations: services.NewRegistrationService(state, bookings),
		Bookings:      bookings,
		Payments:      services.NewPaymentService(state),
		Feedback:      services.NewFeedbackService(state),
		Monitoring:    services.NewMonitoringService(state),
	}, handler.NewPrompter(os.Stdin, os.Stdout))

	console.Run(ctx)

	if err := state.SaveAll(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: some data could not be saved:", err)
	}
	log.Info("exiting")
	return nil
}

// openLog keeps log lines off the console; "-" means stderr.
func openLog(path string) io.Writer {
	if path == "" || path == "-" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file %s, logging to stderr: %v\n", path, err)
		return os.Stderr
	}
	return f
}

func openRepositories(ctx context.Context, cfg *config.Config) (ports.Repositories, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := database.NewPostgresDB(cfg.Database, logger.WithContext(ctx))
		if err != nil {
			return ports.Repositories{}, nil, fmt.Errorf("failed to connect to db after retries: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return ports.Repositories{}, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return postgres.NewRepositories(db), func() { db.Close() }, nil

	case config.BackendFile:
		store, err := flatfile.NewStore(cfg.DataDir)
		if err != nil {
			return ports.Repositories{}, nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		return store.Repositories(), func() {}, nil
	}

	return ports.Repositories{}, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
}

func openCache(ctx context.Context, cfg *config.Config) (ports.AvailabilityCache, func()) {
	if !cfg.Redis.Enabled() {
		return nil, func() {}
	}

	log := logger.WithContext(ctx)
	log.Info("connecting to redis", "addr", cfg.Redis.Addr)

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, continuing without availability cache", "error", err)
		client.Close()
		return nil, func() {}
	}

	log.Info("redis connected")
	return redis.NewAvailabilityCache(client, cfg.Redis.TTL), func() { client.Close() }
}

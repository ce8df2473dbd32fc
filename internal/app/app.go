// Package app wires configuration into stores, locks and services for the
// server, the cron runner and the operator CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agrorent-backend/internal/config"
	"agrorent-backend/internal/lock"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/repository/memory"
	"agrorent-backend/internal/repository/postgres"
	"agrorent-backend/internal/search"
	"agrorent-backend/internal/security"
	"agrorent-backend/internal/service"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const bookingLockPrefix = "agrorent:lock:equipment:"

// App holds every long-lived dependency built from a Config.
type App struct {
	Config *config.Config
	Store  repository.Store
	Tokens security.TokenManager
	Search *search.Engine

	Auth      service.AuthService
	Users     service.UserService
	Equipment service.EquipmentService
	Bookings  service.BookingService
	Ratings   service.RatingAggregator

	closers []func() error
}

// New opens the configured store and lock and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	locker, err := a.openLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Tokens = security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())
	a.Search = search.NewEngine(store.Equipment(), cfg.Search.DefaultRadiusKm)
	a.Ratings = service.NewRatingAggregator(store.Equipment(), store.Bookings(), store.Users())
	a.Auth = service.NewAuthService(store.Users(), a.Tokens)
	a.Users = service.NewUserService(store.Users())
	a.Equipment = service.NewEquipmentService(store.Equipment(), store.Users(), a.Search)
	a.Bookings = service.NewBookingService(
		store.Bookings(),
		store.Equipment(),
		store.Users(),
		service.NewConflictChecker(store.Bookings()),
		a.Ratings,
		service.WithLocker(locker),
	)
	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	cfg := a.Config
	if cfg.Store.Type == config.StoreTypeMemory {
		logger.Info("Using in-memory store")
		return memory.NewStore(), nil
	}

	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	if cfg.Database.EnsureSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
	}
	return postgres.NewStore(db), nil
}

func (a *App) openLocker(ctx context.Context) (lock.Locker, error) {
	cfg := a.Config
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, booking creation is not serialized across instances")
		return lock.Noop{}, nil
	}

	client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	logger.Info("Redis connection established", "addr", cfg.Redis.Addr, "lock_ttl", cfg.LockTTL())
	return lock.NewRedisLocker(client, bookingLockPrefix, cfg.LockTTL()), nil
}

// Close releases the connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && err != redis.ErrClosed {
			logger.Warn("Failed to close resource", "error", err)
		}
	}
	a.closers = nil
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/clients/backend"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/config"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/retention"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/services"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-repositories"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond

	redisNamespace = "lead-service:"
)

// App holds the configured store, backend client and services.
type App struct {
	Config  *config.Config
	Store   repositories.ItemStore
	Backend backend.Client
	Cache   *retention.Cache

	LeadService             services.LeadService
	EstimateService         services.EstimateService
	TestimonialService      services.TestimonialService
	ChatService             services.ChatService
	RetentionCleanupService *services.RetentionCleanupService
}

// NewApp connects the configured store and builds the services on top of it.
func NewApp(cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing lead-service App")

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(cfg.BackendURL, nil, cfg.BackendTimeout)
	return New(cfg, store, client), nil
}

// New wires the services over an already opened store and client.
func New(cfg *config.Config, store repositories.ItemStore, client backend.Client) *App {
	cache := retention.NewCache(store)
	return &App{
		Config:  cfg,
		Store:   store,
		Backend: client,
		Cache:   cache,

		LeadService:             services.NewLeadService(client, cache, services.NewNotificationService(cfg)),
		EstimateService:         services.NewEstimateService(client),
		TestimonialService:      services.NewTestimonialService(client),
		ChatService:             services.NewChatService(client),
		RetentionCleanupService: services.NewRetentionCleanupService(cache),
	}
}

func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			utils.Logger.WithError(err).Warn("Error closing store")
		}
	}
	utils.Logger.Info("lead-service app shutting down.")
}

func openStore(cfg *config.Config) (repositories.ItemStore, error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		store, err := repositories.NewRedisItemStoreFromURL(cfg.RedisURL, redisNamespace)
		if err != nil {
			return nil, err
		}
		if err := withRetry("Redis", store.Ping); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil

	case config.StoragePostgres:
		var pool *pgxpool.Pool
		err := withRetry("DB", func(ctx context.Context) error {
			var err error
			pool, err = newDBPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err = pool.Ping(ctx); err != nil {
				pool.Close()
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := repositories.EnsureBrowserItemsSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure browser_items schema: %w", err)
		}
		return repositories.NewPostgresItemStore(pool, pool.Close), nil

	default:
		utils.Logger.Warn("Using in-memory store; recent requests are lost on restart.")
		return repositories.NewMemoryItemStore(), nil
	}
}

func withRetry(what string, connect func(ctx context.Context) error) error {
	backoff := initialBackoff
	for i := 1; ; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		err := connect(ctx)
		cancel()
		if err == nil {
			utils.Logger.Infof("lead-service connected to %s on attempt %d", what, i)
			return nil
		}

		if i == maxRetries {
			return fmt.Errorf("unable to connect to %s after %d attempts: %w", what, maxRetries, err)
		}
		utils.Logger.WithError(err).Warnf(
			"Failed %s connect on attempt %d/%d. Retrying in %v...",
			what, i, maxRetries, backoff,
		)
		time.Sleep(backoff)
		backoff *= 2
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}

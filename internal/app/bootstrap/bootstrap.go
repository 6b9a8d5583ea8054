package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	rewardservice "pricesaver/contexts/community-experience/reward-service"
	rewardpostgres "pricesaver/contexts/community-experience/reward-service/adapters/postgres"
	catalogservice "pricesaver/contexts/price-intelligence/catalog-service"
	catalogpostgres "pricesaver/contexts/price-intelligence/catalog-service/adapters/postgres"
	insightsservice "pricesaver/contexts/price-intelligence/insights-service"
	insightspostgres "pricesaver/contexts/price-intelligence/insights-service/adapters/postgres"
	submissionservice "pricesaver/contexts/price-intelligence/submission-service"
	submissionpostgres "pricesaver/contexts/price-intelligence/submission-service/adapters/postgres"
	"pricesaver/contexts/price-intelligence/submission-service/application/workers"
	"pricesaver/internal/platform/config"
	"pricesaver/internal/platform/db"
	"pricesaver/internal/platform/httpserver"
	"pricesaver/internal/platform/messaging"
	"pricesaver/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	publisher    *messaging.KafkaPublisher
	outboxRelay  workers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	catalogRepo := catalogpostgres.NewRepository(pg.DB)
	catalogModule := catalogservice.NewModule(catalogservice.Dependencies{
		Repository: catalogRepo,
		Clock:      catalogpostgres.SystemClock{},
		IDGen:      catalogpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	submissionRepo := submissionpostgres.NewRepository(pg.DB, logger)
	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository:   submissionRepo,
		Stores:       catalogRepo,
		Clock:        submissionpostgres.SystemClock{},
		IDGen:        submissionpostgres.UUIDGenerator{},
		RewardAmount: cfg.ApprovalReward,
		Logger:       logger,
	})

	insightsRepo := insightspostgres.NewRepository(pg.DB, logger)
	insightsModule := insightsservice.NewModule(insightsservice.Dependencies{
		Observations:       insightsRepo,
		Catalog:            insightsRepo,
		Snapshots:          insightsRepo,
		Clock:              insightspostgres.SystemClock{},
		LegacyCatalogMatch: cfg.LegacyCatalogMatch,
		Logger:             logger,
	})

	rewardModule := rewardservice.NewModule(rewardservice.Dependencies{
		Repository: rewardpostgres.NewRepository(pg.DB),
		Logger:     logger,
	})

	server := httpserver.New(submissionModule, insightsModule, catalogModule, rewardModule, httpserver.Options{
		Addr:        normalizeAddr(cfg.HTTPPort),
		AdminAPIKey: cfg.AdminAPIKey,
		Metrics:     metrics.New(),
		Logger:      logger,
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	publisher := messaging.NewKafkaPublisher(cfg.KafkaBrokers, logger)
	repo := submissionpostgres.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres:  pg,
		publisher: publisher,
		outboxRelay: workers.OutboxRelay{
			Outbox:    repo,
			Publisher: publisher,
			Clock:     submissionpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	interval := w.pollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", interval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.publisher != nil {
		errs = append(errs, w.publisher.Close())
	}
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

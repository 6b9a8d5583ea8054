package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string   `env:"SERVICE_NAME" envDefault:"pricesaver"`
	HTTPPort     string   `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN  string   `env:"POSTGRES_DSN"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`

	// AdminAPIKey gates moderation endpoints. Empty disables the gate,
	// which is only acceptable for local runs.
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	ApprovalReward     float64 `env:"APPROVAL_REWARD" envDefault:"50"`
	LegacyCatalogMatch bool    `env:"LEGACY_CATALOG_MATCH" envDefault:"true"`

	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"5s"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"50"`
}

func Load() (Config, error) {
	return env.ParseAs[Config]()
}

package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT"   envDefault:"8080"`
	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"ordering"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	// EventsChannelPrefix prefixes the channel of every published event,
	// e.g. "ordering.OrderPlaced".
	EventsChannelPrefix string        `env:"EVENTS_CHANNEL_PREFIX" envDefault:"ordering"`
	InboundChannels     []string      `env:"INBOUND_CHANNELS"      envDefault:"payments,shipping" envSeparator:","`
	ProcessedEventTTL   time.Duration `env:"PROCESSED_EVENT_TTL"   envDefault:"168h"`

	StaleOrderAge       time.Duration `env:"STALE_ORDER_AGE"       envDefault:"48h"`
	StaleOrderSchedule  string        `env:"STALE_ORDER_SCHEDULE"  envDefault:"0 0 * * * *"`
	OutboxRelaySchedule string        `env:"OUTBOX_RELAY_SCHEDULE" envDefault:"* * * * * *"`

	ServiceName string     `env:"OTEL_SERVICE_NAME" envDefault:"ordering"`
	LogLevel    slog.Level `env:"LOG_LEVEL"         envDefault:"INFO"`
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// HTTPAddr - адрес API. В этой версии он не настраивается через окружение.
const HTTPAddr = "0.0.0.0:3000"

// Config хранит все основные настройки приложения
type Config struct {
	HTTPAddr string

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsAddr    string `env:"METRICS_ADDR" envDefault:":9090"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"orders"`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"order-service-group"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load читает конфигурацию из .env файла и переменных окружения
// и предоставляет значения по умолчанию
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.HTTPAddr = HTTPAddr

	return cfg, nil
}

// ConsumerEnabled сообщает, задан ли хотя бы один брокер Kafka
func (c *Config) ConsumerEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

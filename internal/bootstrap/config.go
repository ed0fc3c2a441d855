package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort string
	GinMode  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr string

	KafkaBrokers  []string
	ConsumerGroup string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

// LoadConfig reads the process environment. Every value has a development
// default so a bare `docker compose up` works.
func LoadConfig() Config {
	return Config{
		HTTPPort: getenv("PORT", "8080"),
		GinMode:  getenv("GIN_MODE", "debug"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "leave_management"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),

		KafkaBrokers:  strings.Split(getenv("KAFKA_BROKERS", "localhost:9092"), ","),
		ConsumerGroup: getenv("KAFKA_CONSUMER_GROUP", "leave-management"),

		OutboxPollInterval: getenvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		OutboxBatchSize:    getenvInt("OUTBOX_BATCH_SIZE", 50),
	}
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	"github.com/VonnAirone/leave-management-system/internal/bootstrap"
	"github.com/VonnAirone/leave-management-system/internal/credit"
	"github.com/VonnAirone/leave-management-system/internal/events"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka/consumer"
	"github.com/VonnAirone/leave-management-system/internal/shared/connection"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// The consumer binary provisions default leave credits for newly registered
// employees off the employee lifecycle topic.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := bootstrap.LoadConfig()

	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, 5,
	)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	creditService := credit.NewService(db, credit.NewRepository(db), auditlog.NewRepository(db), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: cfg.ConsumerGroup,
		Topic:   events.EmployeeLifecycleTopic,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.RunEmployeeLifecycle(ctx, reader, creditService, logger)
}

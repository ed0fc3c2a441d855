package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/bootstrap"
	"github.com/VonnAirone/leave-management-system/internal/cosworker"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka/producer"
	"github.com/VonnAirone/leave-management-system/internal/shared/connection"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// The worker binary drains the transactional outbox to Kafka and keeps the
// stored contract statuses in step with the calendar.
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

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go refreshContractStatuses(ctx, cosworker.NewRepository(db), logger)

	outbox := producer.NewWorker(kafka.NewOutboxRepository(db), writer, cfg.OutboxPollInterval, cfg.OutboxBatchSize, logger)
	outbox.Run(ctx)
}

func refreshContractStatuses(ctx context.Context, repo cosworker.Repository, logger *zap.Logger) {
	log := logger.Named("worker.contract_status")
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	refresh := func() {
		updated, err := repo.RefreshStatuses(ctx, time.Now().UTC())
		if err != nil {
			log.Error("refresh contract statuses failed", zap.Error(err))
			return
		}
		if updated > 0 {
			log.Info("contract statuses refreshed", zap.Int64("updated", updated))
		}
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			log.Info("contract status refresher stopped")
			return
		case <-ticker.C:
			refresh()
		}
	}
}

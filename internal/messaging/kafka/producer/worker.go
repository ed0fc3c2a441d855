package producer

import (
	"context"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50

	// bound on the final drain when the process is shutting down
	shutdownFlushTimeout = 5 * time.Second
)

// MessageWriter is the slice of kafka-go's Writer the outbox worker needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Worker drains pending outbox rows to Kafka on a fixed poll interval. A row
// that fails to publish is marked failed and picked up again by the
// repository's retry query, so delivery is at-least-once and downstream
// handlers must stay idempotent.
type Worker struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	pollInterval time.Duration
	batchSize    int
	logger       *zap.Logger
}

func NewWorker(repo kafka.OutboxRepository, writer MessageWriter, pollInterval time.Duration, batchSize int, logger ...*zap.Logger) *Worker {
	l := zap.L().Named("kafka.producer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer")
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Worker{
		repo:         repo,
		writer:       writer,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       l,
	}
}

// Run blocks until ctx is cancelled, then flushes one last batch so a clean
// stop leaves no publishable decision or provisioning events behind.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started",
		zap.Duration("poll_interval", w.pollInterval),
		zap.Int("batch_size", w.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			w.drain(flushCtx)
			cancel()
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain publishes one batch of pending rows and records each outcome.
func (w *Worker) drain(ctx context.Context) {
	events, err := w.repo.ListPending(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("list pending outbox rows failed", zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		if err := w.publish(ctx, event); err != nil {
			w.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = w.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		w.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}
}

package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/credit"
	"github.com/VonnAirone/leave-management-system/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunEmployeeLifecycle consumes employee lifecycle events and provisions the
// default leave-credit ledger rows for each new employee. Provisioning is
// idempotent, so redelivery after a crash is harmless.
func RunEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	creditService credit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		if err := handleMessage(ctx, creditService, msg, log); err != nil {
			log.Error("handle employee lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			// Leave the offset uncommitted; the message is retried after
			// rebalance or restart.
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit offset failed", zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, creditService credit.Service, msg kafkago.Message, log *zap.Logger) error {
	var event events.EmployeeProvisionedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// A malformed payload never becomes valid; log and move on.
		log.Warn("skipping undecodable event",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	if event.EventType != "employee_provisioned" {
		return nil
	}

	if err := creditService.EnsureDefaults(ctx, event.EmployeeID, event.OccurredAt.Year()); err != nil {
		return err
	}

	log.Info("default credits provisioned",
		zap.String("employee_id", event.EmployeeID),
		zap.String("request_id", event.RequestID),
	)
	return nil
}

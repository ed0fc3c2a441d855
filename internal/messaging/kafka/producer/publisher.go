package producer

import (
	"context"

	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publish converts an outbox row into a Kafka message. The aggregate id keys
// the message, keeping all events for one application or profile on a single
// partition; the request id from the originating API call rides as a header
// when the row carries one.
func (w *Worker) publish(ctx context.Context, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return w.writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}

package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent

	sent   []string
	failed map[string]string
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error { return nil }

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	msgs    []kafkago.Message
	failKey string
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, msg := range msgs {
		if f.failKey != "" && string(msg.Key) == f.failKey {
			return errors.New("broker unavailable")
		}
		f.msgs = append(f.msgs, msg)
	}
	return nil
}

func outboxEvent(aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     "req-" + aggregateID,
		AggregateType: "leave_application",
		AggregateID:   aggregateID,
		EventType:     "leave_decided",
		Topic:         "hr.leave.lifecycle.v1",
		Payload:       []byte(`{"event_type":"leave_decided"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestDrainPublishesAndRecordsOutcomes(t *testing.T) {
	good := outboxEvent("app-1")
	bad := outboxEvent("app-2")
	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{good, bad}}
	writer := &fakeWriter{failKey: "app-2"}

	w := NewWorker(repo, writer, 0, 0)
	w.drain(context.Background())

	require.Len(t, repo.sent, 1)
	assert.Equal(t, good.ID, repo.sent[0])
	require.Contains(t, repo.failed, bad.ID)
	assert.Contains(t, repo.failed[bad.ID], "broker unavailable")

	// one message per application, keyed by aggregate id
	require.Len(t, writer.msgs, 1)
	msg := writer.msgs[0]
	assert.Equal(t, "hr.leave.lifecycle.v1", msg.Topic)
	assert.Equal(t, "app-1", string(msg.Key))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "leave_decided", headers["event_type"])
	assert.Equal(t, "req-app-1", headers["request_id"])
}

func TestDrainHonorsBatchSize(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{
		outboxEvent("app-1"), outboxEvent("app-2"), outboxEvent("app-3"),
	}}
	writer := &fakeWriter{}

	w := NewWorker(repo, writer, 0, 2)
	w.drain(context.Background())

	assert.Len(t, repo.sent, 2)
}

package events

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/The-Wary-One/lens-protocol/internal/ports"
	"github.com/google/uuid"
)

type memOutbox struct {
	records   []ports.OutboxRecord
	published map[uuid.UUID]bool
	failed    map[uuid.UUID]string
}

func (o *memOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	o.records = append(o.records, ports.OutboxRecord{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      event.Payload,
		FirstSeenAt:  event.OccurredAt,
	})
	return nil
}

func (o *memOutbox) FetchUnpublished(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	out := make([]ports.OutboxRecord, 0, limit)
	for _, rec := range o.records {
		if o.published[rec.OutboxID] {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *memOutbox) MarkPublished(_ context.Context, outboxID uuid.UUID, _ time.Time) error {
	o.published[outboxID] = true
	return nil
}

func (o *memOutbox) MarkFailed(_ context.Context, outboxID uuid.UUID, errMsg string, _ time.Time) error {
	o.failed[outboxID] = errMsg
	return nil
}

type selectivePublisher struct {
	failType string
}

func (p *selectivePublisher) Publish(_ context.Context, eventType string, _ []byte, _ string) error {
	if eventType == p.failType {
		return fmt.Errorf("broker unavailable")
	}
	return nil
}

func TestOutboxWorkerProcessOnce(t *testing.T) {
	t.Parallel()

	outbox := &memOutbox{published: map[uuid.UUID]bool{}, failed: map[uuid.UUID]string{}}
	okID, badID := uuid.New(), uuid.New()
	_ = outbox.Enqueue(context.Background(), ports.OutboxEvent{EventID: okID, EventType: "follow.recorded", OccurredAt: time.Now()})
	_ = outbox.Enqueue(context.Background(), ports.OutboxEvent{EventID: badID, EventType: "follow.profile_initialized", OccurredAt: time.Now()})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewOutboxWorker(logger, outbox, &selectivePublisher{failType: "follow.profile_initialized"}, time.Second, 10)
	if err := worker.processOnce(context.Background()); err != nil {
		t.Fatalf("processOnce: %v", err)
	}

	if !outbox.published[okID] {
		t.Fatalf("expected %s marked published", okID)
	}
	if outbox.published[badID] {
		t.Fatalf("failed event must stay unpublished")
	}
	if outbox.failed[badID] == "" {
		t.Fatalf("expected failure recorded for %s", badID)
	}
}

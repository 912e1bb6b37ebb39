package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
	"github.com/The-Wary-One/lens-protocol/internal/ports"
	"github.com/google/uuid"
)

const (
	EventTypeFollowRecorded     = "follow.recorded"
	EventTypeProfileInitialized = "follow.profile_initialized"
)

func (s *Service) enqueueFollowRecorded(ctx context.Context, follow FollowResponse) error {
	return s.enqueue(ctx, EventTypeFollowRecorded, follow.ProfileID, map[string]any{
		"profile_id":       follow.ProfileID,
		"follower":         follow.Follower,
		"recipient":        follow.Recipient,
		"currency":         follow.Currency,
		"amount":           follow.Amount,
		"recipient_amount": follow.RecipientAmount,
		"treasury_amount":  follow.TreasuryAmount,
		"flow_rate":        follow.FlowRate,
		"followed_at":      follow.FollowedAt,
	})
}

func (s *Service) enqueueProfileInitialized(ctx context.Context, cfg domain.ProfileConfig) error {
	return s.enqueue(ctx, EventTypeProfileInitialized, cfg.ProfileID, map[string]any{
		"profile_id": cfg.ProfileID,
		"recipient":  cfg.Recipient.String(),
		"currency":   cfg.Currency.String(),
		"amount":     cfg.Amount.String(),
		"flow_rate":  cfg.FlowRate.String(),
	})
}

func (s *Service) enqueue(ctx context.Context, eventType, partitionKey string, data map[string]any) error {
	occurredAt := s.nowFn()
	eventID := uuid.New()
	envelope := map[string]any{
		"event_id":       eventID.String(),
		"event_type":     eventType,
		"occurred_at":    occurredAt.Format(time.RFC3339),
		"source_service": s.cfg.ServiceName,
		"schema_version": "1.0",
		"partition_key":  partitionKey,
		"data":           data,
	}
	payload, _ := json.Marshal(envelope)
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:       eventID,
		EventType:     eventType,
		PartitionKey:  partitionKey,
		Payload:       payload,
		OccurredAt:    occurredAt,
		SchemaVersion: "1.0",
	})
}

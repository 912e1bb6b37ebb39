package ports

import (
	"context"
	"time"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
	"github.com/google/uuid"
)

type ProfileConfigRepository interface {
	// Put fully replaces the config stored for the profile.
	Put(ctx context.Context, cfg domain.ProfileConfig) error
	// Get returns domain.ErrNotFound when the profile was never configured.
	Get(ctx context.Context, profileID string) (domain.ProfileConfig, error)
}

type FollowRecordRepository interface {
	// Put overwrites the record for (profile, follower).
	Put(ctx context.Context, rec domain.FollowRecord) error
	// Get returns domain.ErrNotFound when the pair never followed.
	Get(ctx context.Context, profileID string, follower domain.Address) (domain.FollowRecord, error)
}

type OutboxEvent struct {
	EventID       uuid.UUID
	EventType     string
	PartitionKey  string
	Payload       []byte
	OccurredAt    time.Time
	SchemaVersion string
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}

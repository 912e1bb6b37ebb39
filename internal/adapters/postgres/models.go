package postgres

import (
	"time"

	"github.com/google/uuid"
)

type profileConfigModel struct {
	ProfileID    string    `gorm:"column:profile_id;primaryKey"`
	Recipient    string    `gorm:"column:recipient"`
	Currency     string    `gorm:"column:currency"`
	Amount       string    `gorm:"column:amount;type:numeric(78,0)"`
	FlowRate     string    `gorm:"column:flow_rate;type:numeric(78,0)"`
	ConfiguredAt time.Time `gorm:"column:configured_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (profileConfigModel) TableName() string { return "profile_configs" }

type followRecordModel struct {
	ProfileID  string    `gorm:"column:profile_id;primaryKey"`
	Follower   string    `gorm:"column:follower;primaryKey"`
	FollowedAt int64     `gorm:"column:followed_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (followRecordModel) TableName() string { return "follow_records" }

type outboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	RetryCount   int        `gorm:"column:retry_count"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	LastError    *string    `gorm:"column:last_error"`
	FirstSeenAt  time.Time  `gorm:"column:first_seen_at"`
}

func (outboxModel) TableName() string { return "event_outbox" }

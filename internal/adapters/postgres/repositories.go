package postgres

import (
	"github.com/The-Wary-One/lens-protocol/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Configs ports.ProfileConfigRepository
	Follows ports.FollowRecordRepository
	Outbox  ports.OutboxRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Configs: &profileConfigRepository{db: db},
		Follows: &followRecordRepository{db: db},
		Outbox:  &outboxRepository{db: db},
	}
}

package application

import (
	"time"

	"github.com/The-Wary-One/lens-protocol/internal/ports"
)

type Service struct {
	cfg       Config
	configs   ports.ProfileConfigRepository
	follows   ports.FollowRecordRepository
	outbox    ports.OutboxRepository
	receipts  ports.ReceiptRegistry
	streams   ports.StreamLedger
	registry  ports.ModuleRegistry
	transfers ports.TokenTransfer
	cache     ports.Cache
	nowFn     func() time.Time
}

type Dependencies struct {
	Config    Config
	Configs   ports.ProfileConfigRepository
	Follows   ports.FollowRecordRepository
	Outbox    ports.OutboxRepository
	Receipts  ports.ReceiptRegistry
	Streams   ports.StreamLedger
	Registry  ports.ModuleRegistry
	Transfers ports.TokenTransfer
	Cache     ports.Cache
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "follow-gate-service"
	}
	if cfg.ConfigCacheTTL <= 0 {
		cfg.ConfigCacheTTL = 5 * time.Minute
	}
	return &Service{
		cfg:       cfg,
		configs:   deps.Configs,
		follows:   deps.Follows,
		outbox:    deps.Outbox,
		receipts:  deps.Receipts,
		streams:   deps.Streams,
		registry:  deps.Registry,
		transfers: deps.Transfers,
		cache:     deps.Cache,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

package postgres

import (
	"fmt"
	"math/big"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

func toDomainProfileConfig(rec profileConfigModel) (domain.ProfileConfig, error) {
	amount, ok := new(big.Int).SetString(rec.Amount, 10)
	if !ok {
		return domain.ProfileConfig{}, fmt.Errorf("profile %s: corrupt amount %q", rec.ProfileID, rec.Amount)
	}
	flowRate, ok := new(big.Int).SetString(rec.FlowRate, 10)
	if !ok {
		return domain.ProfileConfig{}, fmt.Errorf("profile %s: corrupt flow rate %q", rec.ProfileID, rec.FlowRate)
	}
	return domain.ProfileConfig{
		ProfileID:    rec.ProfileID,
		Recipient:    domain.Address(rec.Recipient),
		Currency:     domain.Address(rec.Currency),
		Amount:       amount,
		FlowRate:     flowRate,
		ConfiguredAt: rec.ConfiguredAt,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

func toDomainFollowRecord(rec followRecordModel) domain.FollowRecord {
	return domain.FollowRecord{
		ProfileID:  rec.ProfileID,
		Follower:   domain.Address(rec.Follower),
		FollowedAt: rec.FollowedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

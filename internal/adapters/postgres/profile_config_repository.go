package postgres

import (
	"context"
	"errors"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileConfigRepository struct {
	db *gorm.DB
}

func (r *profileConfigRepository) Put(ctx context.Context, cfg domain.ProfileConfig) error {
	rec := profileConfigModel{
		ProfileID:    cfg.ProfileID,
		Recipient:    cfg.Recipient.String(),
		Currency:     cfg.Currency.String(),
		Amount:       cfg.Amount.String(),
		FlowRate:     cfg.FlowRate.String(),
		ConfiguredAt: cfg.ConfiguredAt,
		UpdatedAt:    cfg.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
}

func (r *profileConfigRepository) Get(ctx context.Context, profileID string) (domain.ProfileConfig, error) {
	var rec profileConfigModel
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileConfig{}, domain.ErrNotFound
		}
		return domain.ProfileConfig{}, err
	}
	return toDomainProfileConfig(rec)
}

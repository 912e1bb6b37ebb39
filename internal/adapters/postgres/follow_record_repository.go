package postgres

import (
	"context"
	"errors"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type followRecordRepository struct {
	db *gorm.DB
}

func (r *followRecordRepository) Put(ctx context.Context, rec domain.FollowRecord) error {
	row := followRecordModel{
		ProfileID:  rec.ProfileID,
		Follower:   rec.Follower.String(),
		FollowedAt: rec.FollowedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "follower"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

func (r *followRecordRepository) Get(ctx context.Context, profileID string, follower domain.Address) (domain.FollowRecord, error) {
	var row followRecordModel
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND follower = ?", profileID, follower.String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FollowRecord{}, domain.ErrNotFound
		}
		return domain.FollowRecord{}, err
	}
	return toDomainFollowRecord(row), nil
}

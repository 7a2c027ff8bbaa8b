package social

import (
	"context"
	"time"

	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FollowRepository interface {
		Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
		Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
		IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
		GetFollows(ctx context.Context, followerID string, page, limit int) ([]*entities.Follow, int64, error)
	}

	followRepository struct {
		db *gorm.DB
	}
)

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge once; a concurrent duplicate lands on the unique
// (follower, followee) index and is absorbed as a no-op.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	follow := entities.Follow{
		ID:         uuid.New(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
		DoNothing: true,
	}).Create(&follow).Error
}

// Unfollow removes the edge if present; removing a missing edge succeeds.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&entities.Follow{}).Error
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) GetFollows(ctx context.Context, followerID string, page, limit int) ([]*entities.Follow, int64, error) {
	var follows []*entities.Follow
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, 0, err
	}

	return follows, count, nil
}

package user

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/dbmysql"
)

// FollowRepository manages the directed follow edges. Edge uniqueness is
// enforced by the composite primary key; this layer does not pre-check.
type FollowRepository interface {
	CreateEdge(ctx context.Context, followeeID, followerID int64) error
	DeleteEdge(ctx context.Context, followeeID, followerID int64) error
	ListFollowees(ctx context.Context, userID int64) ([]int64, error)
	ListFollowers(ctx context.Context, userID int64) ([]int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateEdge(ctx context.Context, followeeID, followerID int64) error {
	edge := dbmysql.Follower{UserID: followeeID, FollowerID: followerID}
	return r.db.WithContext(ctx).Create(&edge).Error
}

// DeleteEdge removes an edge if present. Deleting an absent edge is a no-op.
func (r *followRepository) DeleteEdge(ctx context.Context, followeeID, followerID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", followeeID, followerID).
		Delete(&dbmysql.Follower{}).Error
}

func (r *followRepository) ListFollowees(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follower{}).
		Where("follower_id = ?", userID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *followRepository) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follower{}).
		Where("user_id = ?", userID).
		Order("follower_id").
		Pluck("follower_id", &ids).Error
	return ids, err
}

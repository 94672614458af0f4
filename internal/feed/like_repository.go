package feed

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/dbmysql"
)

// LikeRepository is the engagement ledger. The composite primary key on
// (tweet_id, user_id) is the authoritative uniqueness check; concurrent
// duplicate likes lose at the constraint, not at a pre-check.
type LikeRepository interface {
	AddLike(ctx context.Context, tweetID, userID int64) error
	RemoveLike(ctx context.Context, tweetID, userID int64) (bool, error)
	CountLikes(ctx context.Context, tweetID int64) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) AddLike(ctx context.Context, tweetID, userID int64) error {
	like := dbmysql.Like{TweetID: tweetID, UserID: userID}
	return r.db.WithContext(ctx).Create(&like).Error
}

// RemoveLike reports whether a row was actually deleted; removing an
// absent like is not an error.
func (r *likeRepository) RemoveLike(ctx context.Context, tweetID, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("tweet_id = ? AND user_id = ?", tweetID, userID).
		Delete(&dbmysql.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) CountLikes(ctx context.Context, tweetID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	return count, err
}

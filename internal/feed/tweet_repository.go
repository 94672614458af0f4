package feed

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"microblog/internal/dbmysql"
	"microblog/internal/logger"
)

// likeCountSelect computes the per-tweet like count as a correlated
// aggregate, so listing N tweets costs one query, not N+1.
const likeCountSelect = "table_tweets.*, " +
	"(SELECT COUNT(*) FROM table_likes WHERE table_likes.tweet_id = table_tweets.tweet_id) AS like_count"

type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *dbmysql.Tweet, mediaIDs []int64) error
	GetTweet(ctx context.Context, tweetID int64) (*dbmysql.Tweet, error)
	TweetExists(ctx context.Context, tweetID int64) (bool, error)
	// DeleteTweet removes a tweet with its likes and attachment
	// associations, only when callerID is the author. It reports whether a
	// delete happened and which attached media ended up unreferenced.
	DeleteTweet(ctx context.Context, tweetID, callerID int64) (bool, []int64, error)
	// ListFeed returns ranked tweets authored by users the viewer follows.
	ListFeed(ctx context.Context, viewerID int64, limit, offset int) ([]dbmysql.Tweet, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

// CreateTweet persists the tweet and its attachment associations in one
// transaction. Media ids that do not resolve to a row are skipped rather
// than failing the whole tweet.
func (r *tweetRepository) CreateTweet(ctx context.Context, tweet *dbmysql.Tweet, mediaIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tweet).Error; err != nil {
			return err
		}
		if len(mediaIDs) == 0 {
			return nil
		}

		var resolved []int64
		if err := tx.Model(&dbmysql.Media{}).
			Where("media_id IN ?", mediaIDs).
			Pluck("media_id", &resolved).Error; err != nil {
			return err
		}
		if len(resolved) == 0 {
			return nil
		}
		if len(resolved) < len(mediaIDs) {
			logger.Debug("skipping unresolved media ids",
				"tweet_id", tweet.TweetID, "given", len(mediaIDs), "resolved", len(resolved))
		}

		for _, mediaID := range resolved {
			assoc := dbmysql.TweetMedia{TweetID: tweet.TweetID, MediaID: mediaID}
			if err := tx.Create(&assoc).Error; err != nil {
				return err
			}
		}
		return tx.Where("media_id IN ?", resolved).Find(&tweet.Attachments).Error
	})
}

func (r *tweetRepository) GetTweet(ctx context.Context, tweetID int64) (*dbmysql.Tweet, error) {
	var tweet dbmysql.Tweet
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Tweet{}).
		Select(likeCountSelect).
		Preload("Author").
		Preload("Likes.User").
		Preload("Attachments").
		Where("tweet_id = ?", tweetID).
		First(&tweet).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) TweetExists(ctx context.Context, tweetID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Tweet{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	return count > 0, err
}

func (r *tweetRepository) DeleteTweet(ctx context.Context, tweetID, callerID int64) (bool, []int64, error) {
	deleted := false
	var orphaned []int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tweet dbmysql.Tweet
		err := tx.Where("tweet_id = ? AND author_id = ?", tweetID, callerID).
			First(&tweet).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// absent or foreign tweet: report false, not an error
			return nil
		}
		if err != nil {
			return err
		}

		var attached []int64
		if err := tx.Model(&dbmysql.TweetMedia{}).
			Where("tweet_id = ?", tweetID).
			Pluck("media_id", &attached).Error; err != nil {
			return err
		}

		if err := tx.Where("tweet_id = ?", tweetID).Delete(&dbmysql.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&dbmysql.TweetMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&dbmysql.Tweet{}).Error; err != nil {
			return err
		}

		for _, mediaID := range attached {
			var refs int64
			if err := tx.Model(&dbmysql.TweetMedia{}).
				Where("media_id = ?", mediaID).
				Count(&refs).Error; err != nil {
				return err
			}
			if refs == 0 {
				orphaned = append(orphaned, mediaID)
			}
		}

		deleted = true
		return nil
	})
	return deleted, orphaned, err
}

// ListFeed ranks by like count descending, then tweet id descending so
// newer tweets win ties. The two-key order is a strict total order, which
// keeps pagination stable.
func (r *tweetRepository) ListFeed(ctx context.Context, viewerID int64, limit, offset int) ([]dbmysql.Tweet, error) {
	followees := r.db.Model(&dbmysql.Follower{}).
		Select("user_id").
		Where("follower_id = ?", viewerID)

	q := r.db.WithContext(ctx).
		Model(&dbmysql.Tweet{}).
		Select(likeCountSelect).
		Where("author_id IN (?)", followees).
		Order("like_count DESC, tweet_id DESC").
		Preload("Author").
		Preload("Likes.User").
		Preload("Attachments").
		Limit(limit)
	if offset > 0 {
		q = q.Offset(offset)
	}

	var tweets []dbmysql.Tweet
	err := q.Find(&tweets).Error
	return tweets, err
}

package feed

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"microblog/internal/apperr"
	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/dbmysql"
	"microblog/internal/logger"
)

const (
	// MaxTweetLen is measured in runes, not bytes.
	MaxTweetLen = 280

	// DefaultFeedLimit caps a feed page when the caller does not ask
	// for a size.
	DefaultFeedLimit = 100
)

// MediaRemover deletes stored media by id. Satisfied by the media
// service; kept narrow so the feed service does not depend on the
// storage backend.
type MediaRemover interface {
	Delete(ctx context.Context, mediaID int64) error
}

type FeedService interface {
	CreateTweet(ctx context.Context, authorID int64, content string, mediaIDs []int64) (*dbmysql.Tweet, error)
	GetTweet(ctx context.Context, tweetID int64) (*dbmysql.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, callerID int64) (bool, error)
	AddLike(ctx context.Context, tweetID, userID int64) error
	RemoveLike(ctx context.Context, tweetID, userID int64) (bool, error)
	CountLikes(ctx context.Context, tweetID int64) (int64, error)
	ComposeFeed(ctx context.Context, viewerID int64, limit, page int) ([]dbmysql.Tweet, error)
}

type feedService struct {
	tweets TweetRepository
	likes  LikeRepository
	media  MediaRemover
	cache  *cache.RedisCache
	cfg    *config.Config
}

// NewFeedService wires the feed composer. media and likeCache may be
// nil; the service degrades to no media cleanup and no like-count
// caching respectively.
func NewFeedService(tweets TweetRepository, likes LikeRepository, media MediaRemover, likeCache *cache.RedisCache, cfg *config.Config) FeedService {
	return &feedService{tweets: tweets, likes: likes, media: media, cache: likeCache, cfg: cfg}
}

func (s *feedService) CreateTweet(ctx context.Context, authorID int64, content string, mediaIDs []int64) (*dbmysql.Tweet, error) {
	if content == "" {
		return nil, apperr.Errorf(apperr.EINVALID, "tweet content is required")
	}
	if utf8.RuneCountInString(content) > MaxTweetLen {
		return nil, apperr.Errorf(apperr.EINVALID, "tweet content exceeds %d characters", MaxTweetLen)
	}

	tweet := &dbmysql.Tweet{AuthorID: authorID, Content: content}
	if err := s.tweets.CreateTweet(ctx, tweet, mediaIDs); err != nil {
		return nil, err
	}
	logger.Debug("tweet created", "tweet_id", tweet.TweetID, "author_id", authorID)
	return tweet, nil
}

func (s *feedService) GetTweet(ctx context.Context, tweetID int64) (*dbmysql.Tweet, error) {
	tweet, err := s.tweets.GetTweet(ctx, tweetID)
	if err != nil {
		return nil, apperr.TranslateGorm(err, "tweet")
	}
	return tweet, nil
}

// DeleteTweet removes the tweet together with its likes and media
// links. Under the cascade ownership policy, media rows left without
// any referencing tweet are deleted as well, files included. Returns
// false when the tweet does not exist or belongs to another user.
func (s *feedService) DeleteTweet(ctx context.Context, tweetID, callerID int64) (bool, error) {
	deleted, orphaned, err := s.tweets.DeleteTweet(ctx, tweetID, callerID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.invalidateLikeCount(ctx, tweetID)

	if s.cfg != nil && s.cfg.Media.OwnershipPolicy == config.MediaCascade && s.media != nil {
		for _, mediaID := range orphaned {
			if err := s.media.Delete(ctx, mediaID); err != nil {
				logger.Warn("orphaned media cleanup failed", "media_id", mediaID, "error", err)
			}
		}
	}
	return true, nil
}

func (s *feedService) AddLike(ctx context.Context, tweetID, userID int64) error {
	exists, err := s.tweets.TweetExists(ctx, tweetID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Errorf(apperr.ENOTFOUND, "tweet %d not found", tweetID)
	}

	if err := s.likes.AddLike(ctx, tweetID, userID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Errorf(apperr.ECONFLICT, "tweet %d is already liked", tweetID)
		}
		return err
	}
	s.invalidateLikeCount(ctx, tweetID)
	return nil
}

func (s *feedService) RemoveLike(ctx context.Context, tweetID, userID int64) (bool, error) {
	removed, err := s.likes.RemoveLike(ctx, tweetID, userID)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidateLikeCount(ctx, tweetID)
	}
	return removed, nil
}

// CountLikes reads through the cache when one is configured. Cache
// failures fall back to the database and are only logged.
func (s *feedService) CountLikes(ctx context.Context, tweetID int64) (int64, error) {
	if s.cache != nil {
		count, ok, err := s.cache.GetLikeCount(ctx, tweetID)
		if err != nil {
			logger.Warn("like count cache read failed", "tweet_id", tweetID, "error", err)
		} else if ok {
			return count, nil
		}
	}

	count, err := s.likes.CountLikes(ctx, tweetID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetLikeCount(ctx, tweetID, count); err != nil {
			logger.Warn("like count cache write failed", "tweet_id", tweetID, "error", err)
		}
	}
	return count, nil
}

// ComposeFeed pages through the tweets of everyone the viewer follows,
// most liked first, newest first among ties. Pages are 1-based; page
// zero and page one read the same window.
func (s *feedService) ComposeFeed(ctx context.Context, viewerID int64, limit, page int) ([]dbmysql.Tweet, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}
	return s.tweets.ListFeed(ctx, viewerID, limit, offset)
}

func (s *feedService) invalidateLikeCount(ctx context.Context, tweetID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLikeCount(ctx, tweetID); err != nil {
		logger.Warn("like count cache invalidation failed", "tweet_id", tweetID, "error", err)
	}
}

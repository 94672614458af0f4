package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"microblog/internal/config"
)

// likeCountTTL bounds staleness if an invalidation is ever lost.
const likeCountTTL = time.Hour

// RedisCache holds per-tweet like counts so standalone count lookups do not
// hit the database on every request. Feed queries compute their own
// aggregate and never consult the cache.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes a Redis client from config. Only Addr is
// mandatory, password and DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func keyForLikeCount(tweetID int64) string {
	return fmt.Sprintf("likes:count:%d", tweetID)
}

// GetLikeCount returns the cached count for a tweet. ok reports a cache hit;
// zero is a valid cached value and must not be confused with a miss.
func (c *RedisCache) GetLikeCount(ctx context.Context, tweetID int64) (count int64, ok bool, err error) {
	val, err := c.Client.Get(ctx, keyForLikeCount(tweetID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	count, err = strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// SetLikeCount stores the count for a tweet, refreshing the TTL.
func (c *RedisCache) SetLikeCount(ctx context.Context, tweetID, count int64) error {
	return c.Client.Set(ctx, keyForLikeCount(tweetID), count, likeCountTTL).Err()
}

// InvalidateLikeCount drops the cached count after a like is added or
// removed, or the tweet is deleted. The next read repopulates from SQL.
func (c *RedisCache) InvalidateLikeCount(ctx context.Context, tweetID int64) error {
	return c.Client.Del(ctx, keyForLikeCount(tweetID)).Err()
}

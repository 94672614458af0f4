package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"microblog/internal/dbmysql"
)

func setupFeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbmysql.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedFeedUsers(t *testing.T, db *gorm.DB, handles ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(handles))
	for _, h := range handles {
		u := dbmysql.User{Handle: h, PasswordHash: "x"}
		require.NoError(t, db.Create(&u).Error)
		ids = append(ids, u.UserID)
	}
	return ids
}

func seedMedia(t *testing.T, db *gorm.DB, link string) int64 {
	t.Helper()
	m := dbmysql.Media{Link: link}
	require.NoError(t, db.Create(&m).Error)
	return m.MediaID
}

func follow(t *testing.T, db *gorm.DB, followeeID, followerID int64) {
	t.Helper()
	require.NoError(t, db.Create(&dbmysql.Follower{UserID: followeeID, FollowerID: followerID}).Error)
}

func TestTweetRepository_CreateWithMedia(t *testing.T) {
	ctx := context.Background()
	db := setupFeedDB(t)
	repo := NewTweetRepository(db)
	ids := seedFeedUsers(t, db, "author")

	m1 := seedMedia(t, db, "images/1/a.png")
	m2 := seedMedia(t, db, "images/1/b.png")

	tweet := &dbmysql.Tweet{AuthorID: ids[0], Content: "hello"}
	// 9999 does not exist and must be skipped, not fail the tweet
	require.NoError(t, repo.CreateTweet(ctx, tweet, []int64{m1, m2, 9999}))
	require.NotZero(t, tweet.TweetID)
	assert.Len(t, tweet.Attachments, 2)

	got, err := repo.GetTweet(ctx, tweet.TweetID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, "author", got.Author.Handle)
	assert.Len(t, got.Attachments, 2)
	assert.Equal(t, int64(0), got.LikeCount)
}

func TestTweetRepository_DeleteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	db := setupFeedDB(t)
	repo := NewTweetRepository(db)
	ids := seedFeedUsers(t, db, "owner", "intruder")

	tweet := &dbmysql.Tweet{AuthorID: ids[0], Content: "mine"}
	require.NoError(t, repo.CreateTweet(ctx, tweet, nil))

	deleted, orphaned, err := repo.DeleteTweet(ctx, tweet.TweetID, ids[1])
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, orphaned)

	// still there for everyone
	_, err = repo.GetTweet(ctx, tweet.TweetID)
	require.NoError(t, err)

	deleted, _, err = repo.DeleteTweet(ctx, tweet.TweetID, ids[0])
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetTweet(ctx, tweet.TweetID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTweetRepository_DeleteReportsOrphanedMedia(t *testing.T) {
	ctx := context.Background()
	db := setupFeedDB(t)
	repo := NewTweetRepository(db)
	ids := seedFeedUsers(t, db, "author", "fan")

	shared := seedMedia(t, db, "images/1/shared.png")
	exclusive := seedMedia(t, db, "images/1/exclusive.png")

	first := &dbmysql.Tweet{AuthorID: ids[0], Content: "first"}
	require.NoError(t, repo.CreateTweet(ctx, first, []int64{shared, exclusive}))
	second := &dbmysql.Tweet{AuthorID: ids[0], Content: "second"}
	require.NoError(t, repo.CreateTweet(ctx, second, []int64{shared}))

	require.NoError(t, db.Create(&dbmysql.Like{TweetID: first.TweetID, UserID: ids[1]}).Error)

	deleted, orphaned, err := repo.DeleteTweet(ctx, first.TweetID, ids[0])
	require.NoError(t, err)
	assert.True(t, deleted)
	// shared is still attached to the second tweet, only exclusive is loose
	assert.Equal(t, []int64{exclusive}, orphaned)

	var likes int64
	db.Model(&dbmysql.Like{}).Where("tweet_id = ?", first.TweetID).Count(&likes)
	assert.Equal(t, int64(0), likes)

	var rels int64
	db.Model(&dbmysql.TweetMedia{}).Where("tweet_id = ?", first.TweetID).Count(&rels)
	assert.Equal(t, int64(0), rels)

	// media rows survive the repository delete; ownership policy is
	// applied a layer up
	var mediaRows int64
	db.Model(&dbmysql.Media{}).Count(&mediaRows)
	assert.Equal(t, int64(2), mediaRows)
}

func TestTweetRepository_ListFeedOrdering(t *testing.T) {
	ctx := context.Background()
	db := setupFeedDB(t)
	repo := NewTweetRepository(db)
	ids := seedFeedUsers(t, db, "viewer", "a", "b", "outsider")

	follow(t, db, ids[1], ids[0])
	follow(t, db, ids[2], ids[0])

	tweets := make([]*dbmysql.Tweet, 0, 4)
	for _, tc := range []struct {
		author  int64
		content string
	}{
		{ids[1], "a-one"},
		{ids[1], "a-two"},
		{ids[2], "b-one"},
		{ids[3], "not-followed"},
	} {
		tw := &dbmysql.Tweet{AuthorID: tc.author, Content: tc.content}
		require.NoError(t, repo.CreateTweet(ctx, tw, nil))
		tweets = append(tweets, tw)
	}

	// two likes for a-one, one for b-one, none for a-two
	require.NoError(t, db.Create(&dbmysql.Like{TweetID: tweets[0].TweetID, UserID: ids[2]}).Error)
	require.NoError(t, db.Create(&dbmysql.Like{TweetID: tweets[0].TweetID, UserID: ids[3]}).Error)
	require.NoError(t, db.Create(&dbmysql.Like{TweetID: tweets[2].TweetID, UserID: ids[1]}).Error)

	feed, err := repo.ListFeed(ctx, ids[0], 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "a-one", feed[0].Content)
	assert.Equal(t, int64(2), feed[0].LikeCount)
	assert.Equal(t, "b-one", feed[1].Content)
	assert.Equal(t, int64(1), feed[1].LikeCount)
	assert.Equal(t, "a-two", feed[2].Content)
	assert.Equal(t, int64(0), feed[2].LikeCount)
}

func TestTweetRepository_ListFeedTieBreakAndPaging(t *testing.T) {
	ctx := context.Background()
	db := setupFeedDB(t)
	repo := NewTweetRepository(db)
	ids := seedFeedUsers(t, db, "viewer", "author")

	follow(t, db, ids[1], ids[0])

	var created []int64
	for _, content := range []string{"one", "two", "three"} {
		tw := &dbmysql.Tweet{AuthorID: ids[1], Content: content}
		require.NoError(t, repo.CreateTweet(ctx, tw, nil))
		created = append(created, tw.TweetID)
	}

	// all tied at zero likes: newest tweet id wins
	feed, err := repo.ListFeed(ctx, ids[0], 2, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, created[2], feed[0].TweetID)
	assert.Equal(t, created[1], feed[1].TweetID)

	rest, err := repo.ListFeed(ctx, ids[0], 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, created[0], rest[0].TweetID)
}

func TestTweetRepository_ListFeedNoFollowees(t *testing.T) {
	ctx := context.Background()
	db := setupFeedDB(t)
	repo := NewTweetRepository(db)
	ids := seedFeedUsers(t, db, "loner", "busy")

	tw := &dbmysql.Tweet{AuthorID: ids[1], Content: "unseen"}
	require.NoError(t, repo.CreateTweet(ctx, tw, nil))

	feed, err := repo.ListFeed(ctx, ids[0], 10, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

// Command seed fills the database with a small demo dataset: five
// users, a follow graph, a handful of tweets and likes. Useful for
// poking at the feed ranking by hand.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"microblog/internal/config"
	"microblog/internal/dbmysql"
	"microblog/internal/feed"
	"microblog/internal/logger"
	"microblog/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := config.New()
	logger.InitFromConfig(cfg)

	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := dbmysql.Migrate(db); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	users := user.NewUserService(user.NewUserRepository(db), user.NewFollowRepository(db))
	feeds := feed.NewFeedService(feed.NewTweetRepository(db), feed.NewLikeRepository(db), nil, nil, cfg)

	handles := []string{"alice", "bob", "carol", "dave", "erin"}
	ids := make(map[string]int64, len(handles))
	for _, h := range handles {
		created, _, err := users.Register(ctx, h, "password1", "", "")
		if err != nil {
			logger.Error("failed to seed user", "handle", h, "error", err)
			os.Exit(1)
		}
		ids[h] = created.UserID
	}

	// alice follows bob and carol; dave and erin follow everyone
	edges := [][2]string{
		{"alice", "bob"}, {"alice", "carol"},
		{"dave", "alice"}, {"dave", "bob"}, {"dave", "carol"}, {"dave", "erin"},
		{"erin", "alice"}, {"erin", "bob"}, {"erin", "carol"}, {"erin", "dave"},
	}
	for _, e := range edges {
		if _, err := users.Follow(ctx, ids[e[0]], ids[e[1]]); err != nil {
			logger.Error("failed to seed follow", "follower", e[0], "followee", e[1], "error", err)
			os.Exit(1)
		}
	}

	tweets := []struct {
		author  string
		content string
	}{
		{"bob", "first post"},
		{"bob", "still here"},
		{"carol", "hello everyone"},
		{"alice", "good morning"},
		{"erin", "shipping something new today"},
	}
	tweetIDs := make([]int64, 0, len(tweets))
	for _, tw := range tweets {
		created, err := feeds.CreateTweet(ctx, ids[tw.author], tw.content, nil)
		if err != nil {
			logger.Error("failed to seed tweet", "author", tw.author, "error", err)
			os.Exit(1)
		}
		tweetIDs = append(tweetIDs, created.TweetID)
	}

	likes := []struct {
		tweet int
		liker string
	}{
		{2, "alice"}, {2, "dave"}, {2, "erin"},
		{0, "carol"}, {0, "dave"},
		{4, "bob"},
	}
	for _, l := range likes {
		if err := feeds.AddLike(ctx, tweetIDs[l.tweet], ids[l.liker]); err != nil {
			logger.Error("failed to seed like", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("demo data seeded", "users", len(handles), "tweets", len(tweetIDs), "likes", len(likes))
}

//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/dbmysql"
	"microblog/internal/feed"
	"microblog/internal/httpapi"
	"microblog/internal/media"
	"microblog/internal/user"
)

// InitializeApp builds the whole application from config down to the
// HTTP server. Wire generates the real body.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		config.New,
		dbmysql.NewMySQL,
		cache.NewRedisCache,
		ProvideBlobStore,
		media.NewMediaRepository,
		media.NewService,
		ProvideMediaRemover,
		user.NewUserRepository,
		user.NewFollowRepository,
		user.NewUserService,
		feed.NewTweetRepository,
		feed.NewLikeRepository,
		feed.NewFeedService,
		httpapi.NewServer,
		wire.Struct(new(App), "*"),
	)
	return &App{}, nil, nil
}

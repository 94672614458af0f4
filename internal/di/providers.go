// Package di assembles the application graph with wire. Run
// `go generate ./internal/di` after changing providers.
package di

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/dbmongo"
	"microblog/internal/feed"
	"microblog/internal/httpapi"
	"microblog/internal/media"
)

// App bundles everything a main needs to run and shut down cleanly.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.RedisCache
	Media  *media.Service
	Server *httpapi.Server
}

// ProvideBlobStore picks the media backend from config. The gridfs
// backend owns a Mongo connection and hands back its cleanup.
func ProvideBlobStore(cfg *config.Config) (media.BlobStore, func(), error) {
	if cfg.Media.Backend == config.BackendGridFS {
		client, err := dbmongo.NewMongoConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Close(context.Background()) }
		return media.NewGridFSStore(client), cleanup, nil
	}
	return media.NewDiskStore(cfg.Media.Root), func() {}, nil
}

// ProvideMediaRemover narrows the media service to the interface the
// feed service consumes.
func ProvideMediaRemover(svc *media.Service) feed.MediaRemover {
	return svc
}

package media

import (
	"context"
	"time"

	"gorm.io/gorm"

	"microblog/internal/dbmysql"
)

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *dbmysql.Media) error
	GetMedia(ctx context.Context, mediaID int64) (*dbmysql.Media, error)
	DeleteMedia(ctx context.Context, mediaID int64) error
	// ListOrphans returns media rows older than the cutoff that no
	// tweet references anymore.
	ListOrphans(ctx context.Context, olderThan time.Time) ([]dbmysql.Media, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) CreateMedia(ctx context.Context, media *dbmysql.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) GetMedia(ctx context.Context, mediaID int64) (*dbmysql.Media, error) {
	var media dbmysql.Media
	err := r.db.WithContext(ctx).First(&media, "media_id = ?", mediaID).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// DeleteMedia removes the row and any leftover tweet associations in
// one transaction.
func (r *mediaRepository) DeleteMedia(ctx context.Context, mediaID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_id = ?", mediaID).Delete(&dbmysql.TweetMedia{}).Error; err != nil {
			return err
		}
		return tx.Where("media_id = ?", mediaID).Delete(&dbmysql.Media{}).Error
	})
}

func (r *mediaRepository) ListOrphans(ctx context.Context, olderThan time.Time) ([]dbmysql.Media, error) {
	var orphans []dbmysql.Media
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Media{}).
		Select("table_media.*").
		Joins("LEFT JOIN table_media_tweet_relation ON table_media_tweet_relation.media_id = table_media.media_id").
		Where("table_media_tweet_relation.media_id IS NULL").
		Where("table_media.created_at < ?", olderThan).
		Find(&orphans).Error
	return orphans, err
}

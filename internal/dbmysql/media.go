package dbmysql

import "time"

// Media is the metadata row for an uploaded file. Link is the relative
// content path inside the configured blob store; the bytes themselves never
// touch the database.
type Media struct {
	MediaID   int64     `gorm:"primaryKey;column:media_id;autoIncrement" json:"media_id"`
	Link      string    `gorm:"column:link;size:500;not null" json:"link"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Media) TableName() string {
	return "table_media"
}

// TweetMedia associates media with tweets, many-to-many. Rows cascade with
// the owning tweet; whether the media row follows is a policy decision made
// above the storage layer.
type TweetMedia struct {
	TweetID int64 `gorm:"column:tweet_id;primaryKey;autoIncrement:false" json:"tweet_id"`
	MediaID int64 `gorm:"column:media_id;primaryKey;autoIncrement:false" json:"media_id"`
}

func (TweetMedia) TableName() string {
	return "table_media_tweet_relation"
}

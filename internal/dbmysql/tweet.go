package dbmysql

import "time"

type Tweet struct {
	TweetID   int64     `gorm:"primaryKey;column:tweet_id;autoIncrement" json:"tweet_id"`
	AuthorID  int64     `gorm:"column:author_id;not null;index" json:"author_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Author      User    `gorm:"foreignKey:AuthorID;references:UserID" json:"author"`
	Likes       []Like  `gorm:"foreignKey:TweetID;references:TweetID" json:"likes"`
	Attachments []Media `gorm:"many2many:table_media_tweet_relation;foreignKey:TweetID;joinForeignKey:tweet_id;References:MediaID;joinReferences:media_id" json:"attachments"`

	// LikeCount is filled by feed queries from a per-row aggregate.
	// It is not a column.
	LikeCount int64 `gorm:"->;-:migration" json:"like_count"`
}

func (Tweet) TableName() string {
	return "table_tweets"
}

package dbmysql

import "time"

// Like marks that a user liked a tweet. The composite primary key makes a
// second like of the same tweet by the same user a constraint violation,
// which callers translate to a conflict rather than a storage failure.
type Like struct {
	TweetID   int64     `gorm:"column:tweet_id;primaryKey;autoIncrement:false" json:"tweet_id"`
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;references:UserID" json:"user"`
}

func (Like) TableName() string {
	return "table_likes"
}

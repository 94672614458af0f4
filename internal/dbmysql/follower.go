package dbmysql

// Follower is a directed edge in the follow graph: FollowerID follows
// UserID. The composite primary key is the only duplicate-edge guard the
// system relies on under concurrent follow requests.
type Follower struct {
	UserID     int64 `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	FollowerID int64 `gorm:"column:follower_id;primaryKey;autoIncrement:false" json:"follower_id"`
}

func (Follower) TableName() string {
	return "table_followers"
}

package dbmysql

import "time"

type User struct {
	UserID       int64     `gorm:"primaryKey;column:user_id;autoIncrement" json:"user_id"`
	Handle       string    `gorm:"column:handle;uniqueIndex;size:20;not null" json:"handle"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	FirstName    string    `gorm:"column:first_name;size:50" json:"first_name,omitempty"`
	LastName     string    `gorm:"column:last_name;size:50" json:"last_name,omitempty"`
	RegDate      time.Time `gorm:"column:reg_date;autoCreateTime" json:"reg_date"`

	// Followers are users following this one; Following are users this one
	// follows. Both go through table_followers with mirrored join keys.
	Followers []User `gorm:"many2many:table_followers;foreignKey:UserID;joinForeignKey:user_id;References:UserID;joinReferences:follower_id" json:"followers,omitempty"`
	Following []User `gorm:"many2many:table_followers;foreignKey:UserID;joinForeignKey:follower_id;References:UserID;joinReferences:user_id" json:"following,omitempty"`
}

func (User) TableName() string {
	return "table_users"
}

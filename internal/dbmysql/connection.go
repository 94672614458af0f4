package dbmysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"microblog/internal/config"
)

// NewMySQL returns a GORM DB instance connected to MySQL. TranslateError is
// on so duplicate-key violations surface as gorm.ErrDuplicatedKey and can be
// mapped to conflicts uniformly.
func NewMySQL(cnf *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cnf.Database.DSN), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(cnf.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate keeps the schema in sync with the models. Order matters: referenced
// tables first, join tables last.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Follower{},
		&Tweet{},
		&Like{},
		&Media{},
		&TweetMedia{},
	)
}

package user

import (
	"context"

	"gorm.io/gorm"

	"microblog/internal/dbmysql"
)

// Include selects which follow relations to eager-load alongside a user
// fetch, so profile views do not fan out into N+1 queries.
type Include string

const (
	IncludeNone      Include = ""
	IncludeFollowers Include = "followers"
	IncludeFollowing Include = "following"
	IncludeAll       Include = "all"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	GetUserByID(ctx context.Context, userID int64, include Include) (*dbmysql.User, error)
	GetUserByHandle(ctx context.Context, handle string, include Include) (*dbmysql.User, error)
	ListUsers(ctx context.Context, include Include) ([]*dbmysql.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64, include Include) (*dbmysql.User, error) {
	var user dbmysql.User
	err := applyInclude(r.db.WithContext(ctx), include).
		Where("user_id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByHandle(ctx context.Context, handle string, include Include) (*dbmysql.User, error) {
	var user dbmysql.User
	err := applyInclude(r.db.WithContext(ctx), include).
		Where("handle = ?", handle).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context, include Include) ([]*dbmysql.User, error) {
	var users []*dbmysql.User
	err := applyInclude(r.db.WithContext(ctx), include).
		Order("user_id").
		Find(&users).Error
	return users, err
}

func applyInclude(q *gorm.DB, include Include) *gorm.DB {
	switch include {
	case IncludeFollowers:
		q = q.Preload("Followers")
	case IncludeFollowing:
		q = q.Preload("Following")
	case IncludeAll:
		q = q.Preload("Followers").Preload("Following")
	}
	return q
}

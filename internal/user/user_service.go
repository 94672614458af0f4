package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"microblog/internal/apperr"
	"microblog/internal/common"
	"microblog/internal/dbmysql"
	"microblog/internal/logger"
)

type UserService interface {
	Register(ctx context.Context, handle, password, firstName, lastName string) (*dbmysql.User, string, error)
	Login(ctx context.Context, handle, password string) (*dbmysql.User, string, error)
	GetProfile(ctx context.Context, userID int64, include Include) (*dbmysql.User, error)
	GetByHandle(ctx context.Context, handle string, include Include) (*dbmysql.User, error)
	ListUsers(ctx context.Context, include Include) ([]*dbmysql.User, error)

	Follow(ctx context.Context, followerID, followeeID int64) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	ListFollowees(ctx context.Context, userID int64) ([]int64, error)
	ListFollowers(ctx context.Context, userID int64) ([]int64, error)
}

type userService struct {
	userRepo   UserRepository
	followRepo FollowRepository
}

func NewUserService(userRepo UserRepository, followRepo FollowRepository) UserService {
	return &userService{userRepo: userRepo, followRepo: followRepo}
}

func (s *userService) Register(ctx context.Context, handle, password, firstName, lastName string) (*dbmysql.User, string, error) {
	if err := common.ValidateHandle(handle); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &dbmysql.User{
		Handle:       handle,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
	}

	// The unique index on handle is the authoritative duplicate check.
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Errorf(apperr.ECONFLICT, "handle %q is already taken", handle)
		}
		return nil, "", err
	}

	token, err := common.GenerateToken(u.UserID, u.Handle)
	if err != nil {
		return nil, "", err
	}

	logger.Info("user registered", "user_id", u.UserID, "handle", u.Handle)
	return u, token, nil
}

func (s *userService) Login(ctx context.Context, handle, password string) (*dbmysql.User, string, error) {
	if handle == "" || password == "" {
		return nil, "", apperr.Errorf(apperr.EINVALID, "handle and password required")
	}

	u, err := s.userRepo.GetUserByHandle(ctx, handle, IncludeNone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Errorf(apperr.EINVALID, "invalid handle or password")
		}
		return nil, "", err
	}
	if err := common.CheckPassword(password, u.PasswordHash); err != nil {
		return nil, "", apperr.Errorf(apperr.EINVALID, "invalid handle or password")
	}

	token, err := common.GenerateToken(u.UserID, u.Handle)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64, include Include) (*dbmysql.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID, include)
	if err != nil {
		return nil, apperr.TranslateGorm(err, "user")
	}
	return u, nil
}

func (s *userService) GetByHandle(ctx context.Context, handle string, include Include) (*dbmysql.User, error) {
	u, err := s.userRepo.GetUserByHandle(ctx, handle, include)
	if err != nil {
		return nil, apperr.TranslateGorm(err, "user")
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context, include Include) ([]*dbmysql.User, error) {
	return s.userRepo.ListUsers(ctx, include)
}

// Follow inserts a follow edge. A second follow of the same user reports
// created=false with no error, so callers can treat it as idempotent
// success. Racing duplicate follows are resolved by the composite key, not
// by a pre-check.
func (s *userService) Follow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if followerID == followeeID {
		return false, apperr.Errorf(apperr.EINVALID, "cannot follow yourself")
	}

	if _, err := s.userRepo.GetUserByID(ctx, followeeID, IncludeNone); err != nil {
		return false, apperr.TranslateGorm(err, "user")
	}

	if err := s.followRepo.CreateEdge(ctx, followeeID, followerID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Debug("follow edge already exists", "follower_id", followerID, "followee_id", followeeID)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unfollow removes a follow edge if present; removing an absent edge is
// not an error.
func (s *userService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return s.followRepo.DeleteEdge(ctx, followeeID, followerID)
}

func (s *userService) ListFollowees(ctx context.Context, userID int64) ([]int64, error) {
	return s.followRepo.ListFollowees(ctx, userID)
}

func (s *userService) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

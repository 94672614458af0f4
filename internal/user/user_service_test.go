package user

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"microblog/internal/apperr"
	"microblog/internal/dbmysql"
)

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := NewMockUserRepository(ctrl)
	mockFollowRepo := NewMockFollowRepository(ctrl)
	svc := NewUserService(mockUserRepo, mockFollowRepo)
	ctx := context.Background()

	tests := []struct {
		name     string
		handle   string
		password string
		setup    func()
		wantErr  bool
		wantCode string
	}{
		{
			name:     "success",
			handle:   "alice",
			password: "Password123",
			setup: func() {
				mockUserRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, u *dbmysql.User) error {
						u.UserID = 1
						return nil
					})
			},
		},
		{
			name:     "duplicate handle",
			handle:   "bob",
			password: "Password123",
			setup: func() {
				mockUserRepo.EXPECT().CreateUser(ctx, gomock.Any()).Return(gorm.ErrDuplicatedKey)
			},
			wantErr:  true,
			wantCode: apperr.ECONFLICT,
		},
		{
			name:     "invalid handle",
			handle:   "way_too_long_for_the_handle_column",
			password: "Password123",
			setup:    func() {},
			wantErr:  true,
			wantCode: apperr.EINVALID,
		},
		{
			name:     "invalid password",
			handle:   "carol",
			password: "x",
			setup:    func() {},
			wantErr:  true,
			wantCode: apperr.EINVALID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			u, token, err := svc.Register(ctx, tt.handle, tt.password, "", "")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.handle, u.Handle)
			assert.NotEqual(t, tt.password, u.PasswordHash)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := NewMockUserRepository(ctrl)
	mockFollowRepo := NewMockFollowRepository(ctrl)
	svc := NewUserService(mockUserRepo, mockFollowRepo)
	ctx := context.Background()

	// register through the service so the stored hash is real
	var stored *dbmysql.User
	mockUserRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *dbmysql.User) error {
			u.UserID = 1
			stored = u
			return nil
		})
	_, _, err := svc.Register(ctx, "alice", "Password123", "", "")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByHandle(ctx, "alice", IncludeNone).Return(stored, nil)
		u, token, err := svc.Login(ctx, "alice", "Password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), u.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByHandle(ctx, "alice", IncludeNone).Return(stored, nil)
		_, _, err := svc.Login(ctx, "alice", "nope")
		require.Error(t, err)
		assert.Equal(t, apperr.EINVALID, apperr.ErrorCode(err))
	})

	t.Run("unknown handle", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByHandle(ctx, "ghost", IncludeNone).Return(nil, gorm.ErrRecordNotFound)
		_, _, err := svc.Login(ctx, "ghost", "Password123")
		require.Error(t, err)
		assert.Equal(t, apperr.EINVALID, apperr.ErrorCode(err))
	})
}

func TestUserService_Follow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := NewMockUserRepository(ctrl)
	mockFollowRepo := NewMockFollowRepository(ctrl)
	svc := NewUserService(mockUserRepo, mockFollowRepo)
	ctx := context.Background()

	t.Run("creates edge", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByID(ctx, int64(2), IncludeNone).Return(&dbmysql.User{UserID: 2}, nil)
		mockFollowRepo.EXPECT().CreateEdge(ctx, int64(2), int64(1)).Return(nil)

		created, err := svc.Follow(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("duplicate edge is idempotent", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByID(ctx, int64(2), IncludeNone).Return(&dbmysql.User{UserID: 2}, nil)
		mockFollowRepo.EXPECT().CreateEdge(ctx, int64(2), int64(1)).Return(gorm.ErrDuplicatedKey)

		created, err := svc.Follow(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		_, err := svc.Follow(ctx, 1, 1)
		require.Error(t, err)
		assert.Equal(t, apperr.EINVALID, apperr.ErrorCode(err))
	})

	t.Run("unknown followee", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByID(ctx, int64(99), IncludeNone).Return(nil, gorm.ErrRecordNotFound)
		_, err := svc.Follow(ctx, 1, 99)
		require.Error(t, err)
		assert.Equal(t, apperr.ENOTFOUND, apperr.ErrorCode(err))
	})
}

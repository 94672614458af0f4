package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"microblog/internal/apperr"
)

func TestValidateHandle(t *testing.T) {
	assert.NoError(t, ValidateHandle("alice_42"))

	tests := []struct {
		name   string
		handle string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("a", MaxHandleLen+1)},
		{"bad characters", "no spaces!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHandle(tt.handle)
			assert.Error(t, err)
			assert.Equal(t, apperr.EINVALID, apperr.ErrorCode(err))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret1"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 101)))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "Password123", hash)

	assert.NoError(t, CheckPassword("Password123", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, "alice")
	assert.NoError(t, err)

	claims, err := ValidToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Handle)

	_, err = ValidToken(token + "tampered")
	assert.Error(t, err)
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, ECONFLICT, ErrorCode(Errorf(ECONFLICT, "like already exists")))
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("driver: bad connection")))

	wrapped := fmt.Errorf("adding like: %w", Errorf(ECONFLICT, "duplicate"))
	assert.Equal(t, ECONFLICT, ErrorCode(wrapped))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "tweet not found", ErrorMessage(Errorf(ENOTFOUND, "tweet not found")))
	assert.Equal(t, "An internal error has occurred.", ErrorMessage(errors.New("secret detail")))
}

func TestTranslateGorm(t *testing.T) {
	assert.NoError(t, TranslateGorm(nil, "tweet"))

	err := TranslateGorm(gorm.ErrRecordNotFound, "tweet")
	assert.Equal(t, ENOTFOUND, ErrorCode(err))
	assert.Equal(t, "tweet not found", ErrorMessage(err))

	err = TranslateGorm(gorm.ErrDuplicatedKey, "like")
	assert.Equal(t, ECONFLICT, ErrorCode(err))

	plain := errors.New("disk full")
	assert.Equal(t, plain, TranslateGorm(plain, "tweet"))
}

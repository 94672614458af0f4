package common

import (
	"regexp"
	"strings"

	"microblog/internal/apperr"
)

// MaxHandleLen matches the handle column width.
const MaxHandleLen = 20

var handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateHandle checks a user handle before it hits the unique constraint.
func ValidateHandle(handle string) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return apperr.Errorf(apperr.EINVALID, "handle is required")
	}
	if len(handle) > MaxHandleLen {
		return apperr.Errorf(apperr.EINVALID, "handle must be at most %d characters", MaxHandleLen)
	}
	if !handleRegex.MatchString(handle) {
		return apperr.Errorf(apperr.EINVALID, "handle can only contain letters, numbers and underscores")
	}
	return nil
}

// ValidatePassword enforces minimal password requirements at signup.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return apperr.Errorf(apperr.EINVALID, "password must be at least 6 characters")
	}
	if len(password) > 100 {
		return apperr.Errorf(apperr.EINVALID, "password is too long")
	}
	return nil
}

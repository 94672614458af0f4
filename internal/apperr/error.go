// Package apperr defines the application's error taxonomy. Every failure a
// caller is expected to branch on carries a machine-readable code; anything
// else is treated as unexpected and surfaced opaquely.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Application error codes.
const (
	ECONFLICT = "conflict"  // duplicate like, follow edge, or handle
	EINTERNAL = "internal"  // anything unexpected
	EINVALID  = "invalid"   // validation failed
	ENOTFOUND = "not_found" // user, tweet or media absent
	ETOOLARGE = "too_large" // upload exceeds the configured maximum
)

// Error is an application error. Message is safe to show to clients.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("microblog error: code=%s message=%s", e.Code, e.Message)
}

// Errorf builds an *Error with a formatted message.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the code from an error, or EINTERNAL for errors that
// do not carry one. A nil error has no code.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the client-safe message from an error. Uncoded
// errors map to an opaque message; their detail belongs in server logs
// only (debug builds may surface it at the transport layer).
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}

// TranslateGorm maps gorm storage errors onto the taxonomy. The unique
// constraint is the authoritative duplicate check, so a duplicated-key
// violation always becomes ECONFLICT here, never a raw driver error.
func TranslateGorm(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Errorf(ENOTFOUND, "%s not found", resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Errorf(ECONFLICT, "%s already exists", resource)
	}
	return err
}

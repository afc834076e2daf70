package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmailExists        = errors.New("email exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrQuestionNotFound   = errors.New("question not found")
)

// Token verification failures. The access guard collapses all three into a
// single 401 for clients; the distinction is kept for logging.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// ValidationError reports which required registration fields were blank
// after trimming.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "required fields: " + strings.Join(e.Missing, ", ")
}

// NewValidationError returns nil when no fields are missing.
func NewValidationError(missing ...string) error {
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Missing: missing}
}

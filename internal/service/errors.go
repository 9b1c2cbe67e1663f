package service

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP statuses with errors.Is; anything else is a storage failure and
// surfaces as an opaque 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("message not found")
	ErrForbidden          = errors.New("forbidden")
	ErrWindowExpired      = errors.New("edit window expired")
)

// ValidationError reports a user-correctable problem with submitted input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

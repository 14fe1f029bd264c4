package application

import "errors"

// Service-level sentinel errors. Handlers map these onto HTTP statuses;
// anything not in this list is reported as an internal error.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrOTPAlreadySent     = errors.New("recovery code already sent")
	ErrOTPNotFound        = errors.New("recovery code not found")
	ErrOTPExpired         = errors.New("recovery code expired")
	ErrIdentityMismatch   = errors.New("identity or old password mismatch")
	ErrNothingUpdated     = errors.New("password not updated")
)

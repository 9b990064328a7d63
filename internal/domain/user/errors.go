package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserEmailExists       = errors.New("email already registered")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidPasswordLength = errors.New("password must be at least 8 characters")
	ErrHRAccessRequired      = errors.New("hr access required")
	ErrAdminAccessRequired   = errors.New("admin access required")
)

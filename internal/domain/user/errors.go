package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUserInactive     = errors.New("user account is deactivated")
	ErrAdminRequired    = errors.New("admin privilege required")
	ErrEmployerRequired = errors.New("employer or admin role required")
	ErrWorkerRequired   = errors.New("worker role required")
)

package domain

import "errors"

var (
	ErrUnauthenticated       = errors.New("authentication required")
	ErrMissingNotificationID = errors.New("notification id required")
	ErrStorage               = errors.New("storage error")
	ErrValidation            = errors.New("validation failed")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("not found")
	ErrInvalidPassword       = errors.New("password is incorrect")
	ErrConfirmationMismatch  = errors.New("confirmation text mismatch")
	ErrConflict              = errors.New("already exists")
)

package services

import "errors"

var (
	ErrPasswordsMismatch     = errors.New("passwords do not match")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrInvalidRegistration   = errors.New("name, email and password are required")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrInvalidLoggedInBefore = errors.New("invalid date format for loggedInBefore")
	ErrInvalidLoggedInAfter  = errors.New("invalid date format for loggedInAfter")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

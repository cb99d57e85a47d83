package user

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrMissingUserID        = errors.New("user id is required")
)

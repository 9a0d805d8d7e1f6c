package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("account already exists")
	ErrBadCredentials = errors.New("invalid email or password")
)

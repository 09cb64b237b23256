package user

import "errors"

var (
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrUserNotFound          = errors.New("user not found")
)

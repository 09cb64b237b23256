package account

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountNameExists = errors.New("an account with this name already exists")
)

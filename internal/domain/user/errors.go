package user

import "errors"

var (
	ErrMissingData     = errors.New("user login and email are required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicateLogin  = errors.New("login already exists")
	ErrAccountNotFound = errors.New("account not found")
)

package errors

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrUsernameEmpty        = errors.New("username cannot be empty")
	ErrUsernameTooLong      = errors.New("username must be at most 30 symbols")
	ErrNameTooLong          = errors.New("name must be at most 255 symbols")
	ErrIncorrectPassword    = errors.New("incorrect password")
	ErrUnknownHashAlgorithm = errors.New("unknown password hash algorithm")
)

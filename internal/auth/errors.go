package auth

import (
	"errors"
)

var (
	EmailExistsError        = errors.New("a user with that email address already exists")
	UserNotFoundError       = errors.New("user not found")
	InvalidCredentialsError = errors.New("invalid credentials")
	SessionNotFoundError    = errors.New("session not found")
	SessionExpiredError     = errors.New("session expired")
)

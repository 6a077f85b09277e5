package account

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found
	ErrAccountNotFound = errors.New("account not found")
)

package service

import (
	"errors"
	"fmt"
)

// Business errors. Anything else returned by a service is an infrastructure failure.
var (
	// ErrNotFound means the requested card, edition, user or row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is wrapped by every rejected mutation or malformed input.
	ErrValidation = errors.New("validation failed")

	ErrUnknownCard        = fmt.Errorf("%w: card does not exist", ErrValidation)
	ErrUnknownCondition   = fmt.Errorf("%w: card is not available in that condition", ErrValidation)
	ErrUnknownUser        = fmt.Errorf("%w: user does not exist", ErrValidation)
	ErrDuplicateOwnership = fmt.Errorf("%w: card condition already in collection", ErrValidation)
	ErrNotOwned           = fmt.Errorf("%w: card is not in your collection", ErrValidation)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	ErrUsernameTaken      = fmt.Errorf("%w: username is already taken", ErrValidation)
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", ErrValidation)
	ErrInvalidResetToken  = fmt.Errorf("%w: invalid or expired reset token", ErrValidation)

	// ErrInvalidCredentials is returned by Login for any username/password mismatch.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

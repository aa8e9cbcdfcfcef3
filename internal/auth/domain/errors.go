// Package domain defines API authentication errors.
package domain

import (
	"github.com/stakwork/fieldcrypt/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidToken indicates the bearer token does not match AUTH_TOKEN_HASH.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrAuthTokenHashNotSet indicates the API was started without AUTH_TOKEN_HASH.
	ErrAuthTokenHashNotSet = errors.Wrap(errors.ErrInvalidInput, "AUTH_TOKEN_HASH not set")
)

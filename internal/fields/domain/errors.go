package domain

import (
	"github.com/stakwork/fieldcrypt/internal/errors"
)

// Field-specific error definitions.
var (
	// ErrFieldNotFound indicates no value is stored for the field reference.
	ErrFieldNotFound = errors.Wrap(errors.ErrNotFound, "encrypted field not found")
)

// Package validation provides custom jellydator/validation rules shared by
// request DTOs.
package validation

import (
	"encoding/hex"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/stakwork/fieldcrypt/internal/errors"
)

var (
	identifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:\-]*$`)
	envVarNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Identifier accepts owner types, owner ids, field names and key ids:
// letters, digits and "_.:-", starting with a letter or digit.
var Identifier = validation.NewStringRuleWithError(
	identifierRegex.MatchString,
	validation.NewError("validation_identifier", "must contain only letters, digits, '_', '.', ':' or '-'"),
)

// EnvVarName accepts POSIX style environment variable names.
var EnvVarName = validation.NewStringRuleWithError(
	envVarNameRegex.MatchString,
	validation.NewError("validation_env_var_name", "must be a valid environment variable name"),
)

// HexKey accepts a hex encoded 32-byte key.
var HexKey = validation.NewStringRuleWithError(
	func(s string) bool {
		b, err := hex.DecodeString(s)
		return err == nil && len(b) == 32
	},
	validation.NewError("validation_hex_key", "must be 64 hex characters"),
)

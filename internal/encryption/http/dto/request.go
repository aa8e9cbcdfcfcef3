// Package dto provides data transfer objects for the env-var and key endpoints.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
	customValidation "github.com/stakwork/fieldcrypt/internal/validation"
)

// MaxEnvVars bounds the number of variables in one request.
const MaxEnvVars = 500

// EnvVarRequest is one plaintext variable to encrypt.
type EnvVarRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Validate checks the variable name. Empty values are allowed.
func (r EnvVarRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, customValidation.EnvVarName),
	)
}

// EncryptEnvVarsRequest is the body of POST /v1/env-vars/encrypt.
type EncryptEnvVarsRequest struct {
	EnvVars []EnvVarRequest `json:"envVars"`
}

// Validate checks the list and every variable in it.
func (r *EncryptEnvVarsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EnvVars, validation.Required, validation.Length(1, MaxEnvVars)),
	)
}

// ToDomain converts the request to domain variables, preserving order.
func (r *EncryptEnvVarsRequest) ToDomain() []domain.EnvVar {
	vars := make([]domain.EnvVar, len(r.EnvVars))
	for i, v := range r.EnvVars {
		vars[i] = domain.EnvVar{Name: v.Name, Value: v.Value}
	}
	return vars
}

// StoredEnvVarRequest is one variable to decrypt. Value is an envelope
// object, a serialized envelope string or legacy plaintext.
type StoredEnvVarRequest struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// Validate checks the variable name and that a value was sent.
func (r StoredEnvVarRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, customValidation.EnvVarName),
		validation.Field(&r.Value, validation.Required),
	)
}

// DecryptEnvVarsRequest is the body of POST /v1/env-vars/decrypt.
type DecryptEnvVarsRequest struct {
	EnvVars []StoredEnvVarRequest `json:"envVars"`
}

// Validate checks the list and every variable in it.
func (r *DecryptEnvVarsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EnvVars, validation.Required, validation.Length(1, MaxEnvVars)),
	)
}

// ToDomain decodes every value. A value that is neither a string nor a
// well-formed envelope object fails with an *domain.EnvVarError.
func (r *DecryptEnvVarsRequest) ToDomain() ([]domain.StoredEnvVar, error) {
	vars := make([]domain.StoredEnvVar, len(r.EnvVars))
	for i, v := range r.EnvVars {
		value, err := domain.UnmarshalValue(v.Value)
		if err != nil {
			return nil, &domain.EnvVarError{Index: i, Name: v.Name, Err: err}
		}
		vars[i] = domain.StoredEnvVar{Name: v.Name, Value: value}
	}
	return vars, nil
}

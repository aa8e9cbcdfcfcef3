// Package dto provides data transfer objects for the field store endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
	customValidation "github.com/stakwork/fieldcrypt/internal/validation"
)

const maxIdentifierLength = 255

// FieldPath holds the URL parameters addressing one field.
type FieldPath struct {
	OwnerType string
	OwnerID   string
	FieldName string
}

// Validate checks the owner type, owner id and field name.
func (p *FieldPath) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.OwnerType,
			validation.Required,
			validation.Length(1, maxIdentifierLength),
			customValidation.Identifier,
		),
		validation.Field(&p.OwnerID,
			validation.Required,
			validation.Length(1, maxIdentifierLength),
			customValidation.Identifier,
		),
		validation.Field(&p.FieldName,
			validation.Required,
			validation.Length(1, maxIdentifierLength),
			customValidation.Identifier,
		),
	)
}

// Ref converts the path into a domain reference.
func (p *FieldPath) Ref() fieldsDomain.FieldRef {
	return fieldsDomain.FieldRef{OwnerType: p.OwnerType, OwnerID: p.OwnerID, FieldName: p.FieldName}
}

// OwnerPath holds the URL parameters addressing one owner record.
type OwnerPath struct {
	OwnerType string
	OwnerID   string
}

// Validate checks the owner type and owner id.
func (p *OwnerPath) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.OwnerType,
			validation.Required,
			validation.Length(1, maxIdentifierLength),
			customValidation.Identifier,
		),
		validation.Field(&p.OwnerID,
			validation.Required,
			validation.Length(1, maxIdentifierLength),
			customValidation.Identifier,
		),
	)
}

// PutFieldRequest is the body of a field write. An empty string is a valid
// value; a missing or null value is not.
type PutFieldRequest struct {
	Value *string `json:"value"`
}

// Validate checks that a value was sent.
func (r *PutFieldRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.NotNil),
	)
}

package dto

import (
	"time"

	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
)

// FieldResponse represents a stored field. Value carries the plaintext and
// is only set on reads of a single field.
type FieldResponse struct {
	ID        string    `json:"id"`
	OwnerType string    `json:"ownerType"`
	OwnerID   string    `json:"ownerId"`
	FieldName string    `json:"fieldName"`
	KeyID     string    `json:"keyId,omitempty"`
	Legacy    bool      `json:"legacy"`
	Value     *string   `json:"value,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFieldsResponse wraps a page of fields.
type ListFieldsResponse struct {
	Data []FieldResponse `json:"data"`
}

// MapFieldToResponse converts a field to its metadata response.
func MapFieldToResponse(field *fieldsDomain.EncryptedField) FieldResponse {
	return FieldResponse{
		ID:        field.ID.String(),
		OwnerType: field.OwnerType,
		OwnerID:   field.OwnerID,
		FieldName: field.FieldName,
		KeyID:     field.KeyID,
		Legacy:    field.IsLegacy(),
		CreatedAt: field.CreatedAt,
		UpdatedAt: field.UpdatedAt,
	}
}

// MapFieldToGetResponse converts a decrypted field to a response including
// its plaintext.
func MapFieldToGetResponse(field *fieldsDomain.EncryptedField) FieldResponse {
	response := MapFieldToResponse(field)
	plaintext := field.Plaintext
	response.Value = &plaintext
	return response
}

// MapFieldsToListResponse converts fields to a list response without values.
func MapFieldsToListResponse(fields []*fieldsDomain.EncryptedField) ListFieldsResponse {
	data := make([]FieldResponse, 0, len(fields))
	for _, field := range fields {
		data = append(data, MapFieldToResponse(field))
	}
	return ListFieldsResponse{Data: data}
}

// Package domain defines the field-level encryption model: the versioned
// ciphertext envelope, the stored-value union used to tell envelopes apart
// from legacy plaintext, and the key registry that resolves key ids.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the serialized form of one encrypted field value.
//
// IV, Tag and Data are hex encoded. KeyID names the registry entry needed to
// decrypt; an empty KeyID means the envelope predates key ids and resolves to
// the active key. EncryptedAt is audit metadata and is not authenticated.
//
// Envelopes are stored as JSON strings in columns owned by the surrounding
// application:
//
//	{"version":"1","keyId":"k-test","iv":"...","tag":"...","data":"...","encryptedAt":"2024-01-01T00:00:00.000Z"}
type Envelope struct {
	Version     string `json:"version"`
	KeyID       string `json:"keyId,omitempty"`
	IV          string `json:"iv"`
	Tag         string `json:"tag"`
	Data        string `json:"data"`
	EncryptedAt string `json:"encryptedAt,omitempty"`

	// badField names an optional field that was present with a non-string,
	// non-null JSON type. Such an envelope is still classified as encrypted but never
	// validates.
	badField string
}

// ParseEnvelope parses the JSON form produced by Envelope.String.
//
// The input is an envelope when it is a JSON object carrying version, iv, tag
// and data as strings; anything else returns ErrMalformedEnvelope. Empty
// values, the version itself and the optional keyId and encryptedAt fields do
// not affect classification and are checked by Validate, so a damaged
// envelope fails to decrypt instead of passing as plaintext.
func ParseEnvelope(s string) (*Envelope, error) {
	return parseEnvelopeJSON([]byte(s))
}

func parseEnvelopeJSON(data []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedEnvelope)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	env := &Envelope{}
	required := []struct {
		name string
		dst  *string
	}{
		{"version", &env.Version},
		{"iv", &env.IV},
		{"tag", &env.Tag},
		{"data", &env.Data},
	}
	for _, f := range required {
		if !stringField(fields, f.name, f.dst) {
			return nil, fmt.Errorf("%w: missing %s", ErrMalformedEnvelope, f.name)
		}
	}

	for name, dst := range map[string]*string{"keyId": &env.KeyID, "encryptedAt": &env.EncryptedAt} {
		raw, ok := fields[name]
		if !ok || string(bytes.TrimSpace(raw)) == "null" {
			continue
		}
		if !stringField(fields, name, dst) {
			env.badField = name
		}
	}

	return env, nil
}

// stringField reports whether fields[name] is a JSON string and stores it.
func stringField(fields map[string]json.RawMessage, name string, dst *string) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Validate checks the envelope shape required before decryption: a supported
// version, non-empty iv and tag, and string-typed optional fields. Hex and
// length checks happen during decoding.
func (e Envelope) Validate() error {
	if e.badField != "" {
		return fmt.Errorf("%w: %s must be a string", ErrMalformedEnvelope, e.badField)
	}
	if e.Version != EnvelopeVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedEnvelopeVersion, e.Version)
	}
	if e.IV == "" {
		return fmt.Errorf("%w: missing iv", ErrMalformedEnvelope)
	}
	if e.Tag == "" {
		return fmt.Errorf("%w: missing tag", ErrMalformedEnvelope)
	}
	return nil
}

// String serializes the envelope to the compact JSON stored in the database.
func (e Envelope) String() string {
	// Marshalling a struct of strings cannot fail.
	b, _ := json.Marshal(e)
	return string(b)
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a stored field value: either an Envelope or legacy PlainText.
//
// Callers switch on the concrete type:
//
//	switch v := domain.ParseValue(stored).(type) {
//	case domain.Envelope:
//	    // decrypt v
//	case domain.PlainText:
//	    // value predates encryption
//	}
type Value interface {
	isValue()
}

// PlainText is a stored value that was written before encryption existed.
type PlainText string

func (Envelope) isValue()  {}
func (PlainText) isValue() {}

// ParseValue classifies a stored string. A JSON object with string version, iv,
// tag and data fields becomes Envelope, even when those values are empty or
// damaged; everything else, including malformed JSON and JSON missing a
// required field, is PlainText.
func ParseValue(s string) Value {
	env, err := ParseEnvelope(s)
	if err != nil {
		return PlainText(s)
	}
	return *env
}

// UnmarshalValue decodes a JSON value that may hold an envelope either as an
// object or as a JSON string (the two forms a database value arrives in).
//
// A JSON object must be a valid envelope, otherwise ErrMalformedEnvelope is
// returned. A JSON string is classified with ParseValue.
func UnmarshalValue(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrMalformedEnvelope)
	}

	switch trimmed[0] {
	case '{':
		env, err := parseEnvelopeJSON(trimmed)
		if err != nil {
			return nil, err
		}
		return *env, nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		return ParseValue(s), nil
	default:
		return nil, fmt.Errorf("%w: value must be an object or a string", ErrMalformedEnvelope)
	}
}

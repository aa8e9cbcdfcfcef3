package domain

import (
	"encoding/json"
	"fmt"
)

// EnvVar is a plaintext environment variable.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EncryptedEnvVar is an environment variable whose value has been encrypted.
type EncryptedEnvVar struct {
	Name  string   `json:"name"`
	Value Envelope `json:"value"`
}

// StoredEnvVar is an environment variable as read back from storage. Its
// value may be an envelope object, a serialized envelope string, or legacy
// plaintext.
type StoredEnvVar struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// UnmarshalJSON decodes the value with UnmarshalValue.
func (s *StoredEnvVar) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	value, err := UnmarshalValue(raw.Value)
	if err != nil {
		return fmt.Errorf("env var %q: %w", raw.Name, err)
	}

	s.Name = raw.Name
	s.Value = value
	return nil
}

package dto

import "github.com/stakwork/fieldcrypt/internal/encryption/domain"

// EncryptedEnvVarsResponse lists encrypted variables in request order.
type EncryptedEnvVarsResponse struct {
	EnvVars []domain.EncryptedEnvVar `json:"envVars"`
}

// DecryptedEnvVarsResponse lists plaintext variables in request order.
type DecryptedEnvVarsResponse struct {
	EnvVars []domain.EnvVar `json:"envVars"`
}

// ActiveKeyResponse reports the key id new envelopes are tagged with.
type ActiveKeyResponse struct {
	KeyID string `json:"keyId"`
}

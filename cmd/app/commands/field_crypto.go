package commands

import (
	"fmt"

	encryptionService "github.com/stakwork/fieldcrypt/internal/encryption/service"
)

// RunEncrypt encrypts a single value and writes the envelope JSON. The value
// comes from --value, which may be empty, or from stdin when value is nil. An
// empty keyID selects the active key.
func RunEncrypt(encryptor encryptionService.FieldEncryptor, io IOTuple, fieldName, keyID string, value *string) error {
	plaintext, err := readValue(io.Reader, value)
	if err != nil {
		return err
	}

	encrypt := func() (string, error) {
		if keyID == "" {
			env, err := encryptor.EncryptField(fieldName, plaintext)
			if err != nil {
				return "", err
			}
			return env.String(), nil
		}
		env, err := encryptor.EncryptFieldWithKeyID(fieldName, plaintext, keyID)
		if err != nil {
			return "", err
		}
		return env.String(), nil
	}

	out, err := encrypt()
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	_, err = fmt.Fprintln(io.Writer, out)
	return err
}

// RunDecrypt decrypts a stored value and writes the plaintext. Values that
// are not envelopes are legacy plaintext and are written unchanged.
func RunDecrypt(encryptor encryptionService.FieldEncryptor, io IOTuple, fieldName string, value *string) error {
	stored, err := readValue(io.Reader, value)
	if err != nil {
		return err
	}

	plaintext, err := encryptor.DecryptField(fieldName, stored)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	_, err = fmt.Fprintln(io.Writer, plaintext)
	return err
}

package service

import "github.com/stakwork/fieldcrypt/internal/encryption/domain"

// EncryptEnvVars encrypts every value with the active key, using the variable
// name as the field name. The result has the same order and length as vars.
// The first failure is returned as *domain.EnvVarError.
func (s *EncryptionService) EncryptEnvVars(vars []domain.EnvVar) ([]domain.EncryptedEnvVar, error) {
	out := make([]domain.EncryptedEnvVar, 0, len(vars))
	for i, v := range vars {
		env, err := s.EncryptField(v.Name, v.Value)
		if err != nil {
			return nil, &domain.EnvVarError{Index: i, Name: v.Name, Err: err}
		}
		out = append(out, domain.EncryptedEnvVar{Name: v.Name, Value: *env})
	}
	return out, nil
}

// DecryptEnvVars decrypts every value. Legacy plaintext values are returned
// unchanged. The result has the same order and length as vars.
func (s *EncryptionService) DecryptEnvVars(vars []domain.StoredEnvVar) ([]domain.EnvVar, error) {
	out := make([]domain.EnvVar, 0, len(vars))
	for i, v := range vars {
		plaintext, err := s.DecryptValue(v.Name, v.Value)
		if err != nil {
			return nil, &domain.EnvVarError{Index: i, Name: v.Name, Err: err}
		}
		out = append(out, domain.EnvVar{Name: v.Name, Value: plaintext})
	}
	return out, nil
}

var _ FieldEncryptor = (*EncryptionService)(nil)

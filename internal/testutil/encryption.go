package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
	"github.com/stakwork/fieldcrypt/internal/encryption/service"
)

// Fixed keys used across tests.
const (
	TestKeyID  = "k-test"
	TestKeyHex = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"
	AltKeyID   = "k-alt"
	AltKeyHex  = "ffeeddccbbaa99887766554433221100ffeeddccbbaa99887766554433221100"
)

// NewEncryptionService returns a service whose registry holds TestKeyID
// (active) and AltKeyID. The registry is closed when the test ends.
func NewEncryptionService(t *testing.T) (*service.EncryptionService, *domain.KeyRegistry) {
	t.Helper()

	registry, err := domain.NewKeyRegistry(TestKeyID, TestKeyHex)
	require.NoError(t, err)
	require.NoError(t, registry.SetKey(AltKeyID, AltKeyHex))
	t.Cleanup(registry.Close)

	return service.NewEncryptionService(registry), registry
}

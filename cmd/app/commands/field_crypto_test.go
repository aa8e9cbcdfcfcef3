package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
	"github.com/stakwork/fieldcrypt/internal/testutil"
)

func TestRunEncryptDecrypt(t *testing.T) {
	svc, _ := testutil.NewEncryptionService(t)

	t.Run("round-trip-from-flag", func(t *testing.T) {
		var encrypted bytes.Buffer
		require.NoError(t, RunEncrypt(svc, IOTuple{Writer: &encrypted}, "apiKey", "", ptr("sk-live-1")))

		env, err := domain.ParseEnvelope(strings.TrimSpace(encrypted.String()))
		require.NoError(t, err)
		assert.Equal(t, testutil.TestKeyID, env.KeyID)

		var decrypted bytes.Buffer
		require.NoError(t, RunDecrypt(svc, IOTuple{Writer: &decrypted}, "apiKey", ptr(strings.TrimSpace(encrypted.String()))))
		assert.Equal(t, "sk-live-1\n", decrypted.String())
	})

	t.Run("stdin-and-explicit-key", func(t *testing.T) {
		var encrypted bytes.Buffer
		in := IOTuple{Reader: strings.NewReader("from stdin\n"), Writer: &encrypted}
		require.NoError(t, RunEncrypt(svc, in, "apiKey", testutil.AltKeyID, nil))
		assert.Contains(t, encrypted.String(), `"keyId":"`+testutil.AltKeyID+`"`)

		var decrypted bytes.Buffer
		in = IOTuple{Reader: strings.NewReader(encrypted.String()), Writer: &decrypted}
		require.NoError(t, RunDecrypt(svc, in, "apiKey", nil))
		assert.Equal(t, "from stdin\n", decrypted.String())
	})

	t.Run("unknown-key", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncrypt(svc, IOTuple{Writer: &out}, "apiKey", "missing", ptr("v"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		assert.Empty(t, out.String())
	})

	t.Run("legacy-plaintext-passthrough", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunDecrypt(svc, IOTuple{Writer: &out}, "apiKey", ptr("plain-old-value")))
		assert.Equal(t, "plain-old-value\n", out.String())
	})

	t.Run("no-input", func(t *testing.T) {
		err := RunEncrypt(svc, IOTuple{Reader: strings.NewReader(""), Writer: &bytes.Buffer{}}, "apiKey", "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no value given")
	})

	t.Run("explicit-empty-value", func(t *testing.T) {
		var encrypted bytes.Buffer
		require.NoError(t, RunEncrypt(svc, IOTuple{Writer: &encrypted}, "apiKey", "", ptr("")))

		env, err := domain.ParseEnvelope(strings.TrimSpace(encrypted.String()))
		require.NoError(t, err)
		assert.Empty(t, env.Data)

		var decrypted bytes.Buffer
		require.NoError(t, RunDecrypt(svc, IOTuple{Writer: &decrypted}, "apiKey", ptr(strings.TrimSpace(encrypted.String()))))
		assert.Equal(t, "\n", decrypted.String())
	})
}

func ptr(s string) *string {
	return &s
}

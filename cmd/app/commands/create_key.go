package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
	"github.com/stakwork/fieldcrypt/internal/encryption/service"
)

// RunCreateKey generates a 32-byte encryption key and prints it as
// environment lines. When keyID is empty an id of the form key-YYYYMMDD is
// used.
//
// Output format:
//   - TOKEN_ENCRYPTION_KEY_ID="<keyID>"
//   - TOKEN_ENCRYPTION_KEY="<hex>"
func RunCreateKey(w io.Writer, keyID string, now time.Time) error {
	if keyID == "" {
		keyID = "key-" + now.UTC().Format("20060102")
	}
	if strings.ContainsAny(keyID, ":, \t\n\"") {
		return fmt.Errorf("invalid key id %q: must not contain ':', ',', quotes or whitespace", keyID)
	}

	key, err := service.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	defer domain.Zero(key)

	_, _ = fmt.Fprintln(w, "# Keep the previous key in ENCRYPTION_KEYS until rotate-fields has finished.")
	_, _ = fmt.Fprintf(w, "TOKEN_ENCRYPTION_KEY_ID=%q\n", keyID)
	_, _ = fmt.Fprintf(w, "TOKEN_ENCRYPTION_KEY=%q\n", service.BytesToHex(key))
	return nil
}

package commands

import (
	"fmt"
	"io"

	authService "github.com/stakwork/fieldcrypt/internal/auth/service"
)

// RunHashToken prints an AUTH_TOKEN_HASH line. When token is empty a random
// token is generated and printed once alongside its hash.
func RunHashToken(tokens authService.TokenService, w io.Writer, token string) error {
	if token != "" {
		hash, err := tokens.HashToken(token)
		if err != nil {
			return fmt.Errorf("failed to hash token: %w", err)
		}
		_, err = fmt.Fprintf(w, "AUTH_TOKEN_HASH=%q\n", hash)
		return err
	}

	plain, hash, err := tokens.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, _ = fmt.Fprintln(w, "# Give AUTH_TOKEN to API clients. It is not stored and cannot be shown again.")
	_, _ = fmt.Fprintf(w, "AUTH_TOKEN=%q\n", plain)
	_, err = fmt.Fprintf(w, "AUTH_TOKEN_HASH=%q\n", hash)
	return err
}

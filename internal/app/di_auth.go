package app

import (
	"fmt"

	authService "github.com/stakwork/fieldcrypt/internal/auth/service"
)

// TokenService returns the bearer token generator.
func (c *Container) TokenService() (authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = authService.NewTokenService()
		if err != nil {
			err = fmt.Errorf("failed to create token service: %w", err)
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// TokenVerifier returns the bearer token verifier. It returns nil without an
// error when AUTH_TOKEN_HASH is not configured.
func (c *Container) TokenVerifier() (authService.TokenVerifier, error) {
	var err error
	c.tokenVerifierInit.Do(func() {
		c.tokenVerifier, err = c.initTokenVerifier()
		if err != nil {
			c.initErrors["tokenVerifier"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenVerifier"]; exists {
		return nil, storedErr
	}
	return c.tokenVerifier, nil
}

func (c *Container) initTokenVerifier() (authService.TokenVerifier, error) {
	if c.config.AuthTokenHash == "" {
		return nil, nil
	}
	verifier, err := authService.NewTokenVerifier(c.config.AuthTokenHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}
	return verifier, nil
}

package app

import (
	"fmt"

	encryptionDomain "github.com/stakwork/fieldcrypt/internal/encryption/domain"
	encryptionHTTP "github.com/stakwork/fieldcrypt/internal/encryption/http"
	encryptionService "github.com/stakwork/fieldcrypt/internal/encryption/service"
)

// KeyRegistry returns the key registry loaded from configuration.
func (c *Container) KeyRegistry() (*encryptionDomain.KeyRegistry, error) {
	var err error
	c.keyRegistryInit.Do(func() {
		c.keyRegistry, err = c.initKeyRegistry()
		if err != nil {
			c.initErrors["keyRegistry"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyRegistry"]; exists {
		return nil, storedErr
	}
	return c.keyRegistry, nil
}

// EncryptionService returns the encryption façade bound to the key registry.
func (c *Container) EncryptionService() (*encryptionService.EncryptionService, error) {
	var err error
	c.encryptionServiceInit.Do(func() {
		c.encryptionService, err = c.initEncryptionService()
		if err != nil {
			c.initErrors["encryptionService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptionService"]; exists {
		return nil, storedErr
	}
	return c.encryptionService, nil
}

// EnvVarHandler returns the HTTP handler for env var and key routes.
func (c *Container) EnvVarHandler() (*encryptionHTTP.EnvVarHandler, error) {
	var err error
	c.envVarHandlerInit.Do(func() {
		c.envVarHandler, err = c.initEnvVarHandler()
		if err != nil {
			c.initErrors["envVarHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envVarHandler"]; exists {
		return nil, storedErr
	}
	return c.envVarHandler, nil
}

func (c *Container) initKeyRegistry() (*encryptionDomain.KeyRegistry, error) {
	registry, err := encryptionDomain.LoadKeyRegistry(c.config.KeyRegistryParams())
	if err != nil {
		return nil, fmt.Errorf("failed to load key registry: %w", err)
	}
	return registry, nil
}

func (c *Container) initEncryptionService() (*encryptionService.EncryptionService, error) {
	registry, err := c.KeyRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to get key registry for encryption service: %w", err)
	}
	return encryptionService.NewEncryptionService(registry), nil
}

func (c *Container) initEnvVarHandler() (*encryptionHTTP.EnvVarHandler, error) {
	svc, err := c.EncryptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption service for env var handler: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for env var handler: %w", err)
	}

	return encryptionHTTP.NewEnvVarHandler(svc, businessMetrics, c.Logger()), nil
}

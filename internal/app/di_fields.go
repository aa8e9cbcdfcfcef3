package app

import (
	"fmt"

	"github.com/stakwork/fieldcrypt/internal/database"
	fieldsHTTP "github.com/stakwork/fieldcrypt/internal/fields/http"
	fieldsRepository "github.com/stakwork/fieldcrypt/internal/fields/repository"
	fieldsUseCase "github.com/stakwork/fieldcrypt/internal/fields/usecase"
)

// FieldRepository returns the field repository for the configured driver.
func (c *Container) FieldRepository() (fieldsUseCase.FieldRepository, error) {
	var err error
	c.fieldRepositoryInit.Do(func() {
		c.fieldRepository, err = c.initFieldRepository()
		if err != nil {
			c.initErrors["fieldRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldRepository"]; exists {
		return nil, storedErr
	}
	return c.fieldRepository, nil
}

// FieldUseCase returns the field use case wrapped with metrics.
func (c *Container) FieldUseCase() (fieldsUseCase.FieldUseCase, error) {
	var err error
	c.fieldUseCaseInit.Do(func() {
		c.fieldUseCase, err = c.initFieldUseCase()
		if err != nil {
			c.initErrors["fieldUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldUseCase"]; exists {
		return nil, storedErr
	}
	return c.fieldUseCase, nil
}

// FieldHandler returns the HTTP handler for field routes.
func (c *Container) FieldHandler() (*fieldsHTTP.FieldHandler, error) {
	var err error
	c.fieldHandlerInit.Do(func() {
		c.fieldHandler, err = c.initFieldHandler()
		if err != nil {
			c.initErrors["fieldHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldHandler"]; exists {
		return nil, storedErr
	}
	return c.fieldHandler, nil
}

func (c *Container) initFieldRepository() (fieldsUseCase.FieldRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for field repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return fieldsRepository.NewMySQLFieldRepository(db), nil
	case database.DriverPostgres:
		return fieldsRepository.NewPostgreSQLFieldRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initFieldUseCase() (fieldsUseCase.FieldUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for field use case: %w", err)
	}

	fieldRepo, err := c.FieldRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get field repository for field use case: %w", err)
	}

	svc, err := c.EncryptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption service for field use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for field use case: %w", err)
	}

	useCase := fieldsUseCase.NewFieldUseCase(txManager, fieldRepo, svc)
	return fieldsUseCase.NewFieldUseCaseWithMetrics(useCase, businessMetrics, svc), nil
}

func (c *Container) initFieldHandler() (*fieldsHTTP.FieldHandler, error) {
	useCase, err := c.FieldUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get field use case for field handler: %w", err)
	}
	return fieldsHTTP.NewFieldHandler(useCase, c.Logger()), nil
}

package app

import (
	"fmt"

	keysRepository "github.com/allisson/refvault/internal/keys/repository"
	keysUsecase "github.com/allisson/refvault/internal/keys/usecase"
)

// KeyVersionRepository returns the key version repository based on database driver.
func (c *Container) KeyVersionRepository() (keysUsecase.KeyVersionRepository, error) {
	var err error
	c.components.keyVersionRepoInit.Do(func() {
		c.components.keyVersionRepo, err = c.initKeyVersionRepository()
		if err != nil {
			c.initErrors["keyVersionRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyVersionRepo"]; exists {
		return nil, storedErr
	}
	return c.components.keyVersionRepo, nil
}

// KeyUseCase returns the key lifecycle use case.
func (c *Container) KeyUseCase() (keysUsecase.KeyUseCase, error) {
	var err error
	c.components.keyUseCaseInit.Do(func() {
		c.components.keyUseCase, err = c.initKeyUseCase()
		if err != nil {
			c.initErrors["keyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyUseCase"]; exists {
		return nil, storedErr
	}
	return c.components.keyUseCase, nil
}

// initKeyVersionRepository creates the key version repository instance.
func (c *Container) initKeyVersionRepository() (keysUsecase.KeyVersionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key version repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return keysRepository.NewMySQLKeyVersionRepository(db), nil
	case "postgres":
		return keysRepository.NewPostgreSQLKeyVersionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initKeyUseCase creates the key use case with all its dependencies.
func (c *Container) initKeyUseCase() (keysUsecase.KeyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for key use case: %w", err)
	}

	repo, err := c.KeyVersionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get key version repository for key use case: %w", err)
	}

	store, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for key use case: %w", err)
	}

	return keysUsecase.NewKeyUseCase(txManager, repo, store, c.Logger()), nil
}

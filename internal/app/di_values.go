package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/refvault/internal/crypto/domain"
	cryptoService "github.com/allisson/refvault/internal/crypto/service"
	valuesRepository "github.com/allisson/refvault/internal/values/repository"
	valuesService "github.com/allisson/refvault/internal/values/service"
	valuesUsecase "github.com/allisson/refvault/internal/values/usecase"
)

// SecureValueRepository returns the secure value repository based on database driver.
func (c *Container) SecureValueRepository() (valuesUsecase.SecureValueRepository, error) {
	var err error
	c.components.secureValueRepoInit.Do(func() {
		c.components.secureValueRepo, err = c.initSecureValueRepository()
		if err != nil {
			c.initErrors["secureValueRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secureValueRepo"]; exists {
		return nil, storedErr
	}
	return c.components.secureValueRepo, nil
}

// SecureValueUseCase returns the secure value use case.
func (c *Container) SecureValueUseCase() (valuesUsecase.SecureValueUseCase, error) {
	var err error
	c.components.secureValueUseCaseInit.Do(func() {
		c.components.secureValueUseCase, err = c.initSecureValueUseCase()
		if err != nil {
			c.initErrors["secureValueUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secureValueUseCase"]; exists {
		return nil, storedErr
	}
	return c.components.secureValueUseCase, nil
}

// initSecureValueRepository creates the secure value repository instance.
func (c *Container) initSecureValueRepository() (valuesUsecase.SecureValueRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secure value repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return valuesRepository.NewMySQLSecureValueRepository(db), nil
	case "postgres":
		return valuesRepository.NewPostgreSQLSecureValueRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecureValueUseCase creates the secure value use case with all its dependencies.
func (c *Container) initSecureValueUseCase() (valuesUsecase.SecureValueUseCase, error) {
	repo, err := c.SecureValueRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get repository for secure value use case: %w", err)
	}

	keys, err := c.KeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key use case for secure value use case: %w", err)
	}

	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.AEADAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse AEAD algorithm: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secure value use case: %w", err)
	}

	useCase := valuesUsecase.NewSecureValueUseCase(
		repo,
		keys,
		cryptoService.NewAEADManager(),
		valuesService.NewRefIDGenerator(),
		algorithm,
		c.config.RefIDLength,
		c.Logger(),
	)

	return valuesUsecase.NewSecureValueUseCaseWithMetrics(useCase, businessMetrics), nil
}

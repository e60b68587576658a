package app

import (
	"fmt"

	valuesService "github.com/allisson/refvault/internal/values/service"
	variablesRepository "github.com/allisson/refvault/internal/variables/repository"
	variablesUsecase "github.com/allisson/refvault/internal/variables/usecase"
)

// VariableRepository returns the variable repository based on database driver.
func (c *Container) VariableRepository() (variablesUsecase.VariableRepository, error) {
	var err error
	c.components.variableRepoInit.Do(func() {
		c.components.variableRepo, err = c.initVariableRepository()
		if err != nil {
			c.initErrors["variableRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["variableRepo"]; exists {
		return nil, storedErr
	}
	return c.components.variableRepo, nil
}

// VariableUseCase returns the variable use case.
func (c *Container) VariableUseCase() (variablesUsecase.VariableUseCase, error) {
	var err error
	c.components.variableUseCaseInit.Do(func() {
		c.components.variableUseCase, err = c.initVariableUseCase()
		if err != nil {
			c.initErrors["variableUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["variableUseCase"]; exists {
		return nil, storedErr
	}
	return c.components.variableUseCase, nil
}

// initVariableRepository creates the variable repository instance.
func (c *Container) initVariableRepository() (variablesUsecase.VariableRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for variable repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return variablesRepository.NewMySQLVariableRepository(db), nil
	case "postgres":
		return variablesRepository.NewPostgreSQLVariableRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initVariableUseCase creates the variable use case with all its dependencies.
func (c *Container) initVariableUseCase() (variablesUsecase.VariableUseCase, error) {
	repo, err := c.VariableRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get repository for variable use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for variable use case: %w", err)
	}

	useCase := variablesUsecase.NewVariableUseCase(
		repo,
		valuesService.NewRefIDGenerator(),
		c.config.RefIDLength,
	)

	return variablesUsecase.NewVariableUseCaseWithMetrics(useCase, businessMetrics), nil
}

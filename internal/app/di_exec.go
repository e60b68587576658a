package app

import (
	"fmt"

	execRepository "github.com/allisson/refvault/internal/exec/repository"
	execService "github.com/allisson/refvault/internal/exec/service"
	execUsecase "github.com/allisson/refvault/internal/exec/usecase"
)

// CommandRepository returns the command repository based on database driver.
func (c *Container) CommandRepository() (execUsecase.CommandRepository, error) {
	var err error
	c.components.commandRepoInit.Do(func() {
		c.components.commandRepo, err = c.initCommandRepository()
		if err != nil {
			c.initErrors["commandRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["commandRepo"]; exists {
		return nil, storedErr
	}
	return c.components.commandRepo, nil
}

// CommandUseCase returns the command directory use case.
func (c *Container) CommandUseCase() (execUsecase.CommandUseCase, error) {
	var err error
	c.components.commandUseCaseInit.Do(func() {
		c.components.commandUseCase, err = c.initCommandUseCase()
		if err != nil {
			c.initErrors["commandUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["commandUseCase"]; exists {
		return nil, storedErr
	}
	return c.components.commandUseCase, nil
}

// Runner returns the command runner used by chain resolution.
func (c *Container) Runner() (execService.Runner, error) {
	var err error
	c.components.runnerInit.Do(func() {
		c.components.runner, err = c.initRunner()
		if err != nil {
			c.initErrors["runner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["runner"]; exists {
		return nil, storedErr
	}
	return c.components.runner, nil
}

// initCommandRepository creates the command repository instance.
func (c *Container) initCommandRepository() (execUsecase.CommandRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for command repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return execRepository.NewMySQLCommandRepository(db), nil
	case "postgres":
		return execRepository.NewPostgreSQLCommandRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCommandUseCase creates the command use case with all its dependencies.
func (c *Container) initCommandUseCase() (execUsecase.CommandUseCase, error) {
	repo, err := c.CommandRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get repository for command use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for command use case: %w", err)
	}

	useCase := execUsecase.NewCommandUseCase(repo)

	return execUsecase.NewCommandUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initRunner creates the shell runner backed by the command directory.
func (c *Container) initRunner() (execService.Runner, error) {
	useCase, err := c.CommandUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get command use case for runner: %w", err)
	}

	return execService.NewShellRunner(useCase), nil
}

package app

import (
	"fmt"

	"golang.org/x/time/rate"

	rewriteService "github.com/allisson/refvault/internal/rewrite/service"
	rewriteUsecase "github.com/allisson/refvault/internal/rewrite/usecase"
)

// Canonicalizer returns the author-time placeholder canonicalizer.
func (c *Container) Canonicalizer() (rewriteUsecase.Canonicalizer, error) {
	var err error
	c.components.canonicalizerInit.Do(func() {
		c.components.canonicalizer, err = c.initCanonicalizer()
		if err != nil {
			c.initErrors["canonicalizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["canonicalizer"]; exists {
		return nil, storedErr
	}
	return c.components.canonicalizer, nil
}

// Resolver returns the execution-time reference resolver.
func (c *Container) Resolver() (rewriteUsecase.Resolver, error) {
	var err error
	c.components.resolverInit.Do(func() {
		c.components.resolver, err = c.initResolver()
		if err != nil {
			c.initErrors["resolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resolver"]; exists {
		return nil, storedErr
	}
	return c.components.resolver, nil
}

// initCanonicalizer creates the canonicalizer with all its dependencies.
func (c *Container) initCanonicalizer() (rewriteUsecase.Canonicalizer, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for canonicalizer: %w", err)
	}

	values, err := c.SecureValueUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure value use case for canonicalizer: %w", err)
	}

	variables, err := c.VariableUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get variable use case for canonicalizer: %w", err)
	}

	commands, err := c.CommandUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get command use case for canonicalizer: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for canonicalizer: %w", err)
	}

	canonicalizer := rewriteUsecase.NewCanonicalizer(txManager, values, variables, commands)

	return rewriteUsecase.NewCanonicalizerWithMetrics(canonicalizer, businessMetrics), nil
}

// initResolver creates the resolver with all its dependencies.
func (c *Container) initResolver() (rewriteUsecase.Resolver, error) {
	values, err := c.SecureValueUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure value use case for resolver: %w", err)
	}

	variables, err := c.VariableUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get variable use case for resolver: %w", err)
	}

	runner, err := c.Runner()
	if err != nil {
		return nil, fmt.Errorf("failed to get runner for resolver: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for resolver: %w", err)
	}

	resolver := rewriteUsecase.NewResolver(
		values,
		variables,
		runner,
		rewriteService.NewOSEnvSource(),
		rewriteUsecase.ResolverConfig{
			MaxDepth:      c.config.ResolveMaxDepth,
			Timeout:       c.config.ResolveTimeout,
			MaxConcurrent: int64(c.config.ResolveMaxConcurrent),
			RateLimit:     rate.Limit(c.config.ExecRateLimit),
			RateBurst:     c.config.ExecRateBurst,
		},
		c.Logger(),
	)

	return rewriteUsecase.NewResolverWithMetrics(resolver, businessMetrics), nil
}

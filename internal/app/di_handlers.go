package app

import (
	"fmt"

	execHTTP "github.com/allisson/refvault/internal/exec/http"
	"github.com/allisson/refvault/internal/http"
	keysHTTP "github.com/allisson/refvault/internal/keys/http"
	rewriteHTTP "github.com/allisson/refvault/internal/rewrite/http"
	valuesHTTP "github.com/allisson/refvault/internal/values/http"
	variablesHTTP "github.com/allisson/refvault/internal/variables/http"
)

// initHandlers builds the module handlers mounted on the API server.
func (c *Container) initHandlers() (*http.Handlers, error) {
	logger := c.Logger()

	secureValueUseCase, err := c.SecureValueUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure value use case for handlers: %w", err)
	}

	variableUseCase, err := c.VariableUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get variable use case for handlers: %w", err)
	}

	keyUseCase, err := c.KeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key use case for handlers: %w", err)
	}

	commandUseCase, err := c.CommandUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get command use case for handlers: %w", err)
	}

	canonicalizer, err := c.Canonicalizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get canonicalizer for handlers: %w", err)
	}

	resolver, err := c.Resolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver for handlers: %w", err)
	}

	return &http.Handlers{
		Values:    valuesHTTP.NewSecureValueHandler(secureValueUseCase, logger),
		Variables: variablesHTTP.NewVariableHandler(variableUseCase, logger),
		Keys:      keysHTTP.NewKeyHandler(keyUseCase, logger),
		Commands:  execHTTP.NewCommandHandler(commandUseCase, logger),
		Rewrite:   rewriteHTTP.NewRewriteHandler(canonicalizer, resolver, logger),
	}, nil
}

package app

import (
	"sync"

	execService "github.com/allisson/refvault/internal/exec/service"
	execUsecase "github.com/allisson/refvault/internal/exec/usecase"
	keysUsecase "github.com/allisson/refvault/internal/keys/usecase"
	rewriteUsecase "github.com/allisson/refvault/internal/rewrite/usecase"
	valuesUsecase "github.com/allisson/refvault/internal/values/usecase"
	variablesUsecase "github.com/allisson/refvault/internal/variables/usecase"
)

// moduleComponents holds the per-module repositories, use cases, and their
// initialization guards. Accessors live in the di_<module>.go files.
type moduleComponents struct {
	keyVersionRepo     keysUsecase.KeyVersionRepository
	keyVersionRepoInit sync.Once
	keyUseCase         keysUsecase.KeyUseCase
	keyUseCaseInit     sync.Once

	secureValueRepo        valuesUsecase.SecureValueRepository
	secureValueRepoInit    sync.Once
	secureValueUseCase     valuesUsecase.SecureValueUseCase
	secureValueUseCaseInit sync.Once

	variableRepo        variablesUsecase.VariableRepository
	variableRepoInit    sync.Once
	variableUseCase     variablesUsecase.VariableUseCase
	variableUseCaseInit sync.Once

	commandRepo        execUsecase.CommandRepository
	commandRepoInit    sync.Once
	commandUseCase     execUsecase.CommandUseCase
	commandUseCaseInit sync.Once
	runner             execService.Runner
	runnerInit         sync.Once

	canonicalizer     rewriteUsecase.Canonicalizer
	canonicalizerInit sync.Once
	resolver          rewriteUsecase.Resolver
	resolverInit      sync.Once
}

package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/refvault/internal/errors"
	execService "github.com/allisson/refvault/internal/exec/service"
	rewriteDomain "github.com/allisson/refvault/internal/rewrite/domain"
	rewriteService "github.com/allisson/refvault/internal/rewrite/service"
	valuesUsecase "github.com/allisson/refvault/internal/values/usecase"
	variablesUsecase "github.com/allisson/refvault/internal/variables/usecase"
)

// ResolverConfig bounds chain resolution.
type ResolverConfig struct {
	// MaxDepth limits chain recursion; exceeding it substitutes a cycle
	// error inline instead of recursing further.
	MaxDepth int
	// Timeout is the deadline for one whole top-level resolution pass.
	Timeout time.Duration
	// MaxConcurrent caps simultaneous top-level resolution passes.
	MaxConcurrent int64
	// RateLimit throttles chained command executions; zero disables it.
	RateLimit rate.Limit
	// RateBurst is the limiter burst size.
	RateBurst int
}

type depthKey struct{}

func depthFrom(ctx context.Context) int {
	if depth, ok := ctx.Value(depthKey{}).(int); ok {
		return depth
	}
	return 0
}

func withDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, depthKey{}, depth)
}

// resolver implements Resolver.
//
// The three stages run in a fixed order: command chains, then variables, then
// secure values. Secure resolution runs last so that a chained result or a
// variable value may itself contain the literal {🔒:...} substring without
// being treated as a live reference prematurely, and so decrypted plaintext
// enters the text as late as possible.
type resolver struct {
	values    valuesUsecase.SecureValueUseCase
	variables variablesUsecase.VariableUseCase
	runner    execService.Runner
	env       VariableSource
	maxDepth  int
	timeout   time.Duration
	sem       *semaphore.Weighted
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewResolver creates a new Resolver. env may be nil when no environment
// fallback is configured.
func NewResolver(
	values valuesUsecase.SecureValueUseCase,
	variables variablesUsecase.VariableUseCase,
	runner execService.Runner,
	env VariableSource,
	cfg ResolverConfig,
	logger *slog.Logger,
) Resolver {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 16
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}

	return &resolver{
		values:    values,
		variables: variables,
		runner:    runner,
		env:       env,
		maxDepth:  cfg.MaxDepth,
		timeout:   cfg.Timeout,
		sem:       semaphore.NewWeighted(cfg.MaxConcurrent),
		limiter:   limiter,
		logger:    logger,
	}
}

// Resolve substitutes chain, variable, and secure references in that order.
func (r *resolver) Resolve(ctx context.Context, text string) (string, error) {
	depth := depthFrom(ctx)

	if depth == 0 {
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}

		// Gate concurrent top-level passes only. Recursive resolutions ride
		// on their parent's slot; a nested acquire would deadlock deep chains.
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return text, err
		}
		defer r.sem.Release(1)
	}

	text = r.resolveChains(ctx, text, depth)
	text = r.resolveVariables(ctx, text)
	text = r.resolveSecure(ctx, text)

	return text, nil
}

func (r *resolver) resolveChains(ctx context.Context, text string, depth int) string {
	refs := rewriteService.FindCommandRefs(text)

	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]

		replacement, ok := r.resolveChain(ctx, ref, depth)
		if !ok {
			continue
		}
		text = splice(text, ref.Span, replacement)
	}

	return text
}

// resolveChain produces the substitution for one chain reference. A false
// return leaves the original token in place.
func (r *resolver) resolveChain(ctx context.Context, ref rewriteDomain.Reference, depth int) (string, bool) {
	if depth >= r.maxDepth {
		r.logger.Warn("chain resolution depth limit exceeded",
			slog.String("command_id", ref.Target),
			slog.Int("depth", depth),
		)
		return "Error: " + rewriteDomain.ErrCycleDetected.Error(), true
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "Error: " + err.Error(), true
		}
	}

	result, err := r.runner.Execute(withDepth(ctx, depth+1), ref.Target, r.Resolve)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return "", false
		}
		return "Error: " + err.Error(), true
	}

	if ref.Path != "" {
		if !result.IsStructured {
			return "", false
		}
		value, ok := rewriteService.ExtractPath(result.Structured, ref.Path)
		if !ok {
			return "", false
		}
		return value, true
	}

	return result.Text, true
}

func (r *resolver) resolveVariables(ctx context.Context, text string) string {
	refs := rewriteService.FindVarRefs(text)

	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]

		variable, err := r.variables.Get(ctx, ref.Target)
		if err == nil {
			text = splice(text, ref.Span, variable.Value)
			continue
		}

		if r.env != nil {
			if value, ok := r.env.Lookup(ctx, ref.Target); ok {
				text = splice(text, ref.Span, value)
			}
		}
	}

	return text
}

func (r *resolver) resolveSecure(ctx context.Context, text string) string {
	refs := rewriteService.FindSecureRefs(text)

	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]

		plaintext, err := r.values.Decrypt(ctx, ref.Target)
		if err != nil {
			// unrecoverable or missing: leave the token for the user to see
			r.logger.Warn("secure reference left unresolved",
				slog.String("ref_id", ref.Target),
				slog.Any("error", err),
			)
			continue
		}
		text = splice(text, ref.Span, string(plaintext))
	}

	return text
}

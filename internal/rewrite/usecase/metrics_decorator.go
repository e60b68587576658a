package usecase

import (
	"context"
	"time"

	"github.com/allisson/refvault/internal/metrics"
)

// canonicalizerWithMetrics decorates Canonicalizer with metrics instrumentation.
type canonicalizerWithMetrics struct {
	next    Canonicalizer
	metrics metrics.BusinessMetrics
}

// NewCanonicalizerWithMetrics wraps a Canonicalizer with metrics recording.
func NewCanonicalizerWithMetrics(c Canonicalizer, m metrics.BusinessMetrics) Canonicalizer {
	return &canonicalizerWithMetrics{next: c, metrics: m}
}

// Canonicalize records metrics for canonicalization passes.
func (c *canonicalizerWithMetrics) Canonicalize(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := c.next.Canonicalize(ctx, text)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "rewrite", "canonicalize", status)
	c.metrics.RecordDuration(ctx, "rewrite", "canonicalize", time.Since(start), status)

	return out, err
}

// resolverWithMetrics decorates Resolver with metrics instrumentation.
type resolverWithMetrics struct {
	next    Resolver
	metrics metrics.BusinessMetrics
}

// NewResolverWithMetrics wraps a Resolver with metrics recording.
func NewResolverWithMetrics(r Resolver, m metrics.BusinessMetrics) Resolver {
	return &resolverWithMetrics{next: r, metrics: m}
}

// Resolve records metrics for top-level resolution passes only; recursive
// passes are part of their parent's measurement.
func (r *resolverWithMetrics) Resolve(ctx context.Context, text string) (string, error) {
	if depthFrom(ctx) > 0 {
		return r.next.Resolve(ctx, text)
	}

	start := time.Now()
	out, err := r.next.Resolve(ctx, text)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "rewrite", "resolve", status)
	r.metrics.RecordDuration(ctx, "rewrite", "resolve", time.Since(start), status)

	return out, err
}

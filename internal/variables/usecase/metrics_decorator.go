package usecase

import (
	"context"
	"time"

	"github.com/allisson/refvault/internal/metrics"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
)

// variableUseCaseWithMetrics decorates VariableUseCase with metrics instrumentation.
type variableUseCaseWithMetrics struct {
	next    VariableUseCase
	metrics metrics.BusinessMetrics
}

// NewVariableUseCaseWithMetrics wraps a VariableUseCase with metrics recording.
func NewVariableUseCaseWithMetrics(useCase VariableUseCase, m metrics.BusinessMetrics) VariableUseCase {
	return &variableUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *variableUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "variables", operation, status)
	v.metrics.RecordDuration(ctx, "variables", operation, time.Since(start), status)
}

// Set records metrics for variable set operations.
func (v *variableUseCaseWithMetrics) Set(ctx context.Context, refID, value string) (*variablesDomain.Variable, error) {
	start := time.Now()
	variable, err := v.next.Set(ctx, refID, value)
	v.record(ctx, "variable_set", start, err)
	return variable, err
}

// SetWithLabel records metrics for labeled variable creation operations.
func (v *variableUseCaseWithMetrics) SetWithLabel(ctx context.Context, value, label string) (*variablesDomain.Variable, error) {
	start := time.Now()
	variable, err := v.next.SetWithLabel(ctx, value, label)
	v.record(ctx, "variable_set_labeled", start, err)
	return variable, err
}

// Get records metrics for variable retrieval operations.
func (v *variableUseCaseWithMetrics) Get(ctx context.Context, refID string) (*variablesDomain.Variable, error) {
	start := time.Now()
	variable, err := v.next.Get(ctx, refID)
	v.record(ctx, "variable_get", start, err)
	return variable, err
}

// ResolveLabel records metrics for label resolution operations.
func (v *variableUseCaseWithMetrics) ResolveLabel(ctx context.Context, label string) (string, error) {
	start := time.Now()
	refID, err := v.next.ResolveLabel(ctx, label)
	v.record(ctx, "variable_resolve_label", start, err)
	return refID, err
}

// GenerateID records metrics for refId generation operations.
func (v *variableUseCaseWithMetrics) GenerateID(ctx context.Context) (string, error) {
	start := time.Now()
	refID, err := v.next.GenerateID(ctx)
	v.record(ctx, "variable_generate_id", start, err)
	return refID, err
}

// List records metrics for variable listing operations.
func (v *variableUseCaseWithMetrics) List(ctx context.Context) ([]*variablesDomain.Variable, error) {
	start := time.Now()
	variables, err := v.next.List(ctx)
	v.record(ctx, "variable_list", start, err)
	return variables, err
}

// Delete records metrics for variable deletion operations.
func (v *variableUseCaseWithMetrics) Delete(ctx context.Context, refID string) error {
	start := time.Now()
	err := v.next.Delete(ctx, refID)
	v.record(ctx, "variable_delete", start, err)
	return err
}

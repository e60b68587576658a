package usecase

import (
	"context"
	"time"

	execDomain "github.com/allisson/refvault/internal/exec/domain"
	"github.com/allisson/refvault/internal/metrics"
)

// commandUseCaseWithMetrics decorates CommandUseCase with metrics instrumentation.
type commandUseCaseWithMetrics struct {
	next    CommandUseCase
	metrics metrics.BusinessMetrics
}

// NewCommandUseCaseWithMetrics wraps a CommandUseCase with metrics recording.
func NewCommandUseCaseWithMetrics(useCase CommandUseCase, m metrics.BusinessMetrics) CommandUseCase {
	return &commandUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *commandUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "exec", operation, status)
	c.metrics.RecordDuration(ctx, "exec", operation, time.Since(start), status)
}

// Create records metrics for command creation operations.
func (c *commandUseCaseWithMetrics) Create(
	ctx context.Context,
	commandID string,
	kind execDomain.CommandKind,
	body string,
	label *string,
) (*execDomain.Command, error) {
	start := time.Now()
	command, err := c.next.Create(ctx, commandID, kind, body, label)
	c.record(ctx, "command_create", start, err)
	return command, err
}

// Get records metrics for command retrieval operations.
func (c *commandUseCaseWithMetrics) Get(ctx context.Context, commandID string) (*execDomain.Command, error) {
	start := time.Now()
	command, err := c.next.Get(ctx, commandID)
	c.record(ctx, "command_get", start, err)
	return command, err
}

// ResolveLabel records metrics for label resolution operations.
func (c *commandUseCaseWithMetrics) ResolveLabel(ctx context.Context, label string) (string, error) {
	start := time.Now()
	commandID, err := c.next.ResolveLabel(ctx, label)
	c.record(ctx, "command_resolve_label", start, err)
	return commandID, err
}

// List records metrics for command listing operations.
func (c *commandUseCaseWithMetrics) List(ctx context.Context) ([]*execDomain.Command, error) {
	start := time.Now()
	commands, err := c.next.List(ctx)
	c.record(ctx, "command_list", start, err)
	return commands, err
}

// Delete records metrics for command deletion operations.
func (c *commandUseCaseWithMetrics) Delete(ctx context.Context, commandID string) error {
	start := time.Now()
	err := c.next.Delete(ctx, commandID)
	c.record(ctx, "command_delete", start, err)
	return err
}

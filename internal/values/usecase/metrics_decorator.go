package usecase

import (
	"context"
	"time"

	"github.com/allisson/refvault/internal/metrics"
	valuesDomain "github.com/allisson/refvault/internal/values/domain"
)

// secureValueUseCaseWithMetrics decorates SecureValueUseCase with metrics instrumentation.
type secureValueUseCaseWithMetrics struct {
	next    SecureValueUseCase
	metrics metrics.BusinessMetrics
}

// NewSecureValueUseCaseWithMetrics wraps a SecureValueUseCase with metrics recording.
func NewSecureValueUseCaseWithMetrics(useCase SecureValueUseCase, m metrics.BusinessMetrics) SecureValueUseCase {
	return &secureValueUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *secureValueUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "values", operation, status)
	s.metrics.RecordDuration(ctx, "values", operation, time.Since(start), status)
}

// Encrypt records metrics for value encryption operations.
func (s *secureValueUseCaseWithMetrics) Encrypt(ctx context.Context, plaintext []byte) (*valuesDomain.SecureValue, error) {
	start := time.Now()
	value, err := s.next.Encrypt(ctx, plaintext)
	s.record(ctx, "value_encrypt", start, err)
	return value, err
}

// EncryptWithLabel records metrics for labeled value encryption operations.
func (s *secureValueUseCaseWithMetrics) EncryptWithLabel(
	ctx context.Context,
	plaintext []byte,
	label string,
) (*valuesDomain.SecureValue, error) {
	start := time.Now()
	value, err := s.next.EncryptWithLabel(ctx, plaintext, label)
	s.record(ctx, "value_encrypt_labeled", start, err)
	return value, err
}

// Decrypt records metrics for value decryption operations.
func (s *secureValueUseCaseWithMetrics) Decrypt(ctx context.Context, refID string) ([]byte, error) {
	start := time.Now()
	plaintext, err := s.next.Decrypt(ctx, refID)
	s.record(ctx, "value_decrypt", start, err)
	return plaintext, err
}

// Update records metrics for value update operations.
func (s *secureValueUseCaseWithMetrics) Update(ctx context.Context, refID string, plaintext []byte) error {
	start := time.Now()
	err := s.next.Update(ctx, refID, plaintext)
	s.record(ctx, "value_update", start, err)
	return err
}

// ResolveLabel records metrics for label resolution operations.
func (s *secureValueUseCaseWithMetrics) ResolveLabel(ctx context.Context, label string) (string, error) {
	start := time.Now()
	refID, err := s.next.ResolveLabel(ctx, label)
	s.record(ctx, "value_resolve_label", start, err)
	return refID, err
}

// RotateAllToCurrentKey records metrics for bulk rewrap operations.
func (s *secureValueUseCaseWithMetrics) RotateAllToCurrentKey(ctx context.Context) (int, error) {
	start := time.Now()
	migrated, err := s.next.RotateAllToCurrentKey(ctx)
	s.record(ctx, "value_rewrap", start, err)
	return migrated, err
}

// List records metrics for value listing operations.
func (s *secureValueUseCaseWithMetrics) List(ctx context.Context) ([]*valuesDomain.SecureValue, error) {
	start := time.Now()
	values, err := s.next.List(ctx)
	s.record(ctx, "value_list", start, err)
	return values, err
}

// Delete records metrics for value deletion operations.
func (s *secureValueUseCaseWithMetrics) Delete(ctx context.Context, refID string) error {
	start := time.Now()
	err := s.next.Delete(ctx, refID)
	s.record(ctx, "value_delete", start, err)
	return err
}

package usecase

import (
	"context"
	"time"

	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
	"github.com/stakwork/fieldcrypt/internal/metrics"
)

const metricsDomain = "fields"

// ActiveKeySource reports the key id new values are encrypted with.
type ActiveKeySource interface {
	ActiveKeyID() string
}

// fieldUseCaseWithMetrics decorates FieldUseCase with metrics instrumentation.
type fieldUseCaseWithMetrics struct {
	next    FieldUseCase
	metrics metrics.BusinessMetrics
	keys    ActiveKeySource
}

// NewFieldUseCaseWithMetrics wraps a FieldUseCase with metrics recording.
// Rotated fields are counted under the active key id reported by keys.
func NewFieldUseCaseWithMetrics(
	useCase FieldUseCase,
	m metrics.BusinessMetrics,
	keys ActiveKeySource,
) FieldUseCase {
	return &fieldUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
		keys:    keys,
	}
}

func (f *fieldUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	f.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	f.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Put records metrics for field writes.
func (f *fieldUseCaseWithMetrics) Put(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
	plaintext string,
) (*fieldsDomain.EncryptedField, error) {
	start := time.Now()
	field, err := f.next.Put(ctx, ref, plaintext)
	f.record(ctx, "field_put", start, err)
	return field, err
}

// Get records metrics for field reads.
func (f *fieldUseCaseWithMetrics) Get(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
) (*fieldsDomain.EncryptedField, error) {
	start := time.Now()
	field, err := f.next.Get(ctx, ref)
	f.record(ctx, "field_get", start, err)
	return field, err
}

// List records metrics for field listings.
func (f *fieldUseCaseWithMetrics) List(
	ctx context.Context,
	ownerType, ownerID string,
	offset, limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	start := time.Now()
	fields, err := f.next.List(ctx, ownerType, ownerID, offset, limit)
	f.record(ctx, "field_list", start, err)
	return fields, err
}

// Delete records metrics for field deletion.
func (f *fieldUseCaseWithMetrics) Delete(ctx context.Context, ref fieldsDomain.FieldRef) error {
	start := time.Now()
	err := f.next.Delete(ctx, ref)
	f.record(ctx, "field_delete", start, err)
	return err
}

// Rotate records metrics for rotation batches and counts rotated fields.
func (f *fieldUseCaseWithMetrics) Rotate(ctx context.Context, batchSize int) (int, error) {
	start := time.Now()
	count, err := f.next.Rotate(ctx, batchSize)
	f.record(ctx, "field_rotate", start, err)
	if count > 0 {
		f.metrics.RecordFieldsRotated(ctx, f.keys.ActiveKeyID(), count)
	}
	return count, err
}

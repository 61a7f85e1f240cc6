package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// withTimeout bounds ctx by d. A zero duration leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// storeErr marks store deadline failures as retryable.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}

// nopMetrics discards every measurement.
type nopMetrics struct{}

func (nopMetrics) RecordReceived(string) {}
func (nopMetrics) RecordError(string)    {}
func (nopMetrics) ContactsSaved(int)     {}
func (nopMetrics) BatchFailed(int)       {}

func metricsOrNop(m driven.Metrics) driven.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

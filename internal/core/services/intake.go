package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
	"github.com/mukesh2006/medic/internal/core/ports/driving"
	"github.com/mukesh2006/medic/internal/logger"
)

// Ensure IntakeService implements the interface.
var _ driving.IntakeService = (*IntakeService)(nil)

// IntakeService parses inbound SMS, resolves the reporting facility and
// stores the resulting data records.
type IntakeService struct {
	parser   driven.FormParser
	resolver *FacilityResolver
	store    driven.DocumentStore
	metrics  driven.Metrics
	timeout  time.Duration
}

// NewIntakeService creates a new intake service.
// A nil metrics recorder discards measurements; a zero timeout leaves
// store calls unbounded.
func NewIntakeService(
	parser driven.FormParser,
	resolver *FacilityResolver,
	store driven.DocumentStore,
	metrics driven.Metrics,
	timeout time.Duration,
) *IntakeService {
	return &IntakeService{
		parser:   parser,
		resolver: resolver,
		store:    store,
		metrics:  metricsOrNop(metrics),
		timeout:  timeout,
	}
}

// Receive parses msg, resolves its facility and persists the record.
func (s *IntakeService) Receive(ctx context.Context, msg *domain.RawMessage) (*domain.DataRecord, error) {
	rec, err := s.Preview(ctx, msg)
	if err != nil {
		return nil, err
	}

	doc, err := domain.NewDocument(rec)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.store.BulkWrite(ctx, []domain.Document{doc})
	if err != nil {
		return nil, storeErr(fmt.Errorf("saving record %s: %w", rec.ID, err))
	}
	if batchErr := domain.NewBatchError(results); batchErr != nil {
		return nil, batchErr
	}
	if len(results) > 0 {
		rec.Rev = results[0].Rev
	}

	logger.Debug("stored record %s (form %s, %d errors)", rec.ID, rec.Form, len(rec.Errors))
	return rec, nil
}

// Preview parses msg and resolves its facility without storing anything.
func (s *IntakeService) Preview(ctx context.Context, msg *domain.RawMessage) (*domain.DataRecord, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", domain.ErrInvalidInput)
	}
	if msg.ReceivedAt.IsZero() {
		m := *msg
		m.ReceivedAt = time.Now()
		msg = &m
	}

	rec, err := s.parser.Parse(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReceived(rec.Form)
	for _, e := range rec.Errors {
		s.metrics.RecordError(e.Code)
	}

	if s.resolver != nil {
		ctx, cancel := withTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.resolver.Resolve(ctx, rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// GetRecord retrieves a stored data record by ID.
func (s *IntakeService) GetRecord(ctx context.Context, id string) (*domain.DataRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: record id is required", domain.ErrInvalidInput)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	var rec domain.DataRecord
	if err := doc.Decode(&rec); err != nil {
		return nil, err
	}
	if rec.Type != domain.TypeDataRecord {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	rec.Rev = doc.Rev
	return &rec, nil
}

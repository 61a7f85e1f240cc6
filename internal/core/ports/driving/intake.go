package driving

import (
	"context"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// IntakeService receives SMS form submissions.
type IntakeService interface {
	// Receive parses msg, resolves the reporting facility and persists the record.
	// Returns domain.ErrMalformedMessage when the envelope cannot be read.
	Receive(ctx context.Context, msg *domain.RawMessage) (*domain.DataRecord, error)

	// Preview parses and resolves msg without persisting it.
	Preview(ctx context.Context, msg *domain.RawMessage) (*domain.DataRecord, error)

	// GetRecord retrieves a stored data record by ID.
	GetRecord(ctx context.Context, id string) (*domain.DataRecord, error)
}

package driven

import (
	"context"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// FormParser turns a raw SMS into a data record.
type FormParser interface {
	// Parse builds the record for msg. Only envelope-level problems are
	// returned as errors (domain.ErrMalformedMessage); field problems are
	// attached to the record.
	Parse(ctx context.Context, msg *domain.RawMessage) (*domain.DataRecord, error)
}

package driving

import (
	"context"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// ContactService manages the contact hierarchy.
type ContactService interface {
	// Save merges a submission into the contact docID (or a new contact of
	// contactType when docID is empty), creates siblings and repeated
	// children, refreshes embedded lineages and writes everything in one batch.
	// A partially failed batch returns the result together with a *domain.BatchError.
	Save(ctx context.Context, sub domain.ContactSubmission, docID, contactType string) (*domain.SaveResult, error)

	// Get retrieves a contact by ID.
	Get(ctx context.Context, id string) (*domain.Contact, error)

	// ListSorted returns live and dead contacts ordered by type then name.
	ListSorted(ctx context.Context) ([]ContactSummary, error)
}

// ContactSummary is one row of the sorted contact listing.
type ContactSummary struct {
	ID   string
	Name string
	Type string
	Dead bool
}

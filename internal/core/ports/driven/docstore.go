package driven

import (
	"context"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// DocumentStore persists JSON documents with optimistic revisions.
// Implementations maintain the secondary indexes named in domain.
type DocumentStore interface {
	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound when the document does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// BulkWrite stores documents and reports a status per document, in
	// input order. The write is not atomic: some documents may be stored
	// while others fail. A document with a Rev must match the stored
	// revision; a document without one must not exist yet. Mismatches are
	// reported as results with Error domain.WriteConflict.
	// A non-nil error means the batch could not be attempted at all.
	BulkWrite(ctx context.Context, docs []domain.Document) ([]domain.WriteResult, error)

	// QueryByKey returns the rows of index whose key equals key, ordered by document ID.
	// An empty key returns every row of the index ordered by key.
	QueryByKey(ctx context.Context, index, key string) ([]domain.IndexRow, error)

	// Close releases the store's resources.
	Close() error
}

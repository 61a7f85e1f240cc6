package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mukesh2006/medic/internal/adapters/driven/storage/views"
	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Index rows are recomputed on every query.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return &doc, nil
}

// BulkWrite stores documents, checking revisions one document at a time.
func (s *DocumentStore) BulkWrite(ctx context.Context, docs []domain.Document) ([]domain.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]domain.WriteResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, s.write(doc))
	}
	return results, nil
}

// write stores one document (caller must hold lock).
func (s *DocumentStore) write(doc domain.Document) domain.WriteResult {
	prepared, err := views.Prepare(doc)
	if err != nil {
		return views.Failed(doc.ID, err)
	}

	stored, exists := s.documents[prepared.ID]
	if res, ok := views.CheckRev(prepared.ID, prepared.Rev, stored.Rev, exists); !ok {
		return res
	}

	saved, err := views.WithRev(prepared, views.NextRev(stored.Rev))
	if err != nil {
		return views.Failed(prepared.ID, err)
	}
	s.documents[doc.ID] = saved
	return domain.WriteResult{ID: saved.ID, Rev: saved.Rev, OK: true}
}

// QueryByKey returns the rows of index matching key.
func (s *DocumentStore) QueryByKey(ctx context.Context, index, key string) ([]domain.IndexRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !views.IsKnownIndex(index) {
		return nil, fmt.Errorf("%w: unknown index %q", domain.ErrInvalidInput, index)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.IndexRow
	for id, doc := range s.documents {
		rows, err := views.Rows(doc)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.Index != index || (key != "" && row.Key != key) {
				continue
			}
			out = append(out, domain.IndexRow{ID: id, Key: row.Key, Value: row.Value})
		}
	}
	views.SortRows(out)
	return out, nil
}

// Close is a no-op for the memory store.
func (s *DocumentStore) Close() error {
	return nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

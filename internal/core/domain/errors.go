package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedMessage indicates the SMS envelope could not be parsed.
	// No data record is created for such a message.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrLineageTooDeep indicates a parent chain exceeded the lineage depth cap,
	// which in practice means the chain loops back on itself.
	ErrLineageTooDeep = errors.New("lineage too deep")

	// ErrConflict indicates a revision mismatch when writing a document.
	// Callers should refetch and retry.
	ErrConflict = errors.New("document update conflict")

	// ErrPartialBatch indicates one or more documents of a bulk write failed.
	ErrPartialBatch = errors.New("partial batch failure")

	// ErrStoreUnavailable indicates the document store timed out or could not
	// be reached. It is retryable.
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// Record error codes attached to a DataRecord. These never abort intake.
const (
	CodeUnknownForm    = "unknown_form"
	CodeMissingField   = "missing_field"
	CodeInvalidInteger = "invalid_integer"
	CodeExtraFields    = "extra_fields"
)

// WriteConflict is the per-document error reported by stores on a revision mismatch.
const WriteConflict = "conflict"

// WriteFailure describes one document that a bulk write rejected.
type WriteFailure struct {
	ID     string
	Error  string
	Reason string
}

// BatchError reports every document of a bulk write that did not save.
//
// Bulk writes are not transactional: documents that are not listed here may
// already be persisted when a BatchError is returned.
type BatchError struct {
	Failures []WriteFailure
}

// NewBatchError collects the failed entries of a bulk write.
// Returns nil if every document was written.
func NewBatchError(results []WriteResult) *BatchError {
	var failures []WriteFailure
	for _, r := range results {
		if r.OK {
			continue
		}
		failures = append(failures, WriteFailure{ID: r.ID, Error: r.Error, Reason: r.Reason})
	}
	if len(failures) == 0 {
		return nil
	}
	return &BatchError{Failures: failures}
}

// Error lists every failed document id with its reason.
func (e *BatchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reason := f.Reason
		if reason == "" {
			reason = f.Error
		}
		parts = append(parts, fmt.Sprintf("%q failed with %q", f.ID, reason))
	}
	return "Some documents did not save correctly: " + strings.Join(parts, "; ")
}

// Unwrap exposes ErrPartialBatch, and ErrConflict when any failure was a
// revision conflict.
func (e *BatchError) Unwrap() []error {
	errs := []error{ErrPartialBatch}
	for _, f := range e.Failures {
		if f.Error == WriteConflict {
			errs = append(errs, ErrConflict)
			break
		}
	}
	return errs
}

// FailedIDs returns the ids of every failed document in batch order.
func (e *BatchError) FailedIDs() []string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.ID
	}
	return ids
}

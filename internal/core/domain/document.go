package domain

import (
	"encoding/json"
	"fmt"
)

// Document is the unit the document store persists.
// Body is the complete JSON object, including its "_id" and "_rev" keys.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Rev is the store revision. Empty for documents never written.
	Rev string

	// Body is the JSON encoding of the document.
	Body json.RawMessage
}

// WriteResult is the per-document outcome of a bulk write.
type WriteResult struct {
	// ID is the document id.
	ID string `json:"id"`

	// Rev is the new revision when the write succeeded.
	Rev string `json:"rev,omitempty"`

	// OK reports whether the document was written.
	OK bool `json:"ok"`

	// Error is a short error identifier, e.g. "conflict".
	Error string `json:"error,omitempty"`

	// Reason is the store's human-readable explanation.
	Reason string `json:"reason,omitempty"`
}

// IndexRow is one entry of a secondary index.
type IndexRow struct {
	// ID is the id of the document that emitted the row.
	ID string `json:"id"`

	// Key is the index key.
	Key string `json:"key"`

	// Value is the emitted value, JSON encoded.
	Value json.RawMessage `json:"value"`
}

// Index names understood by document stores.
const (
	// IndexFacilityByPhone maps a phone number to the contact registered with it.
	IndexFacilityByPhone = "facility_by_phone"

	// IndexContactsByTypeIndexName orders contacts by death status, type and name.
	IndexContactsByTypeIndexName = "contacts_by_type_index_name"
)

// envelope reads the identity keys of any stored JSON document.
type envelope struct {
	ID  string `json:"_id"`
	Rev string `json:"_rev"`
}

// NewDocument encodes v and reads its identity keys.
func NewDocument(v any) (Document, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("encoding document: %w", err)
	}
	return DocumentFromJSON(body)
}

// DocumentFromJSON wraps an already encoded JSON object.
func DocumentFromJSON(body []byte) (Document, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return Document{ID: env.ID, Rev: env.Rev, Body: json.RawMessage(body)}, nil
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Body, v); err != nil {
		return fmt.Errorf("decoding document %s: %w", d.ID, err)
	}
	return nil
}

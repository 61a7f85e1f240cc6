// Package views computes the secondary index rows and revisions shared by
// every document store adapter.
package views

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// Indexes lists every index maintained by the stores.
var Indexes = []string{domain.IndexFacilityByPhone, domain.IndexContactsByTypeIndexName}

// Row is one entry of a secondary index.
type Row struct {
	Index string
	Key   string
	Value json.RawMessage
}

// Rows computes the index rows emitted by doc. Documents that are not
// contacts emit nothing.
func Rows(doc domain.Document) ([]Row, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(doc.Body, &probe); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", doc.ID, err)
	}
	if !slices.Contains(domain.ContactTypes, probe.Type) {
		return nil, nil
	}

	c, err := domain.ContactFromDocument(doc)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, phone := range phones(c) {
		rows = append(rows, Row{Index: domain.IndexFacilityByPhone, Key: phone, Value: doc.Body})
	}

	if row, ok := contactsByTypeIndexName(c); ok {
		rows = append(rows, row)
	}
	return rows, nil
}

// phones returns the distinct non-empty phones of a contact and of its
// embedded primary contact.
func phones(c *domain.Contact) []string {
	var out []string
	add := func(p string) {
		p = strings.TrimSpace(p)
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	add(c.Phone)
	if c.Contact != nil {
		add(c.Contact.Phone)
	}
	return out
}

// contactsByTypeIndexName keys a contact as "<dead> <type index> <name>" so
// that living contacts sort first, then by hierarchy level, then by name.
func contactsByTypeIndexName(c *domain.Contact) (Row, bool) {
	idx := slices.Index(domain.ContactTypes, c.EffectiveType())
	if idx < 0 {
		return Row{}, false
	}

	name := strings.ToLower(c.Name)
	value, err := json.Marshal(name)
	if err != nil {
		return Row{}, false
	}

	dead := c.DateOfDeath != ""
	key := strconv.FormatBool(dead) + " " + strconv.Itoa(idx) + " " + name
	return Row{Index: domain.IndexContactsByTypeIndexName, Key: key, Value: value}, true
}

// IsKnownIndex reports whether name is maintained by the stores.
func IsKnownIndex(name string) bool {
	return slices.Contains(Indexes, name)
}

// NextRev returns the revision following prev, e.g. "1-ab12..." -> "2-cd34...".
func NextRev(prev string) string {
	n := RevGeneration(prev)
	return strconv.Itoa(n+1) + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// RevGeneration returns the numeric prefix of a revision, 0 when absent.
func RevGeneration(rev string) int {
	head, _, ok := strings.Cut(rev, "-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}

// CheckRev applies the optimistic concurrency rule: an update must carry the
// stored revision, a create must carry none. It returns the failed
// WriteResult when the write must be rejected.
func CheckRev(id, incoming, stored string, exists bool) (domain.WriteResult, bool) {
	if exists && incoming == stored {
		return domain.WriteResult{}, true
	}
	if !exists && incoming == "" {
		return domain.WriteResult{}, true
	}
	return Conflict(id), false
}

// Conflict builds the result of a write rejected on its revision.
func Conflict(id string) domain.WriteResult {
	return domain.WriteResult{
		ID:     id,
		Error:  domain.WriteConflict,
		Reason: domain.ErrConflict.Error(),
	}
}

// WithRev returns a copy of doc whose body carries id and rev.
func WithRev(doc domain.Document, rev string) (domain.Document, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(doc.Body, &body); err != nil {
		return domain.Document{}, fmt.Errorf("%w: document %s is not a JSON object", domain.ErrInvalidInput, doc.ID)
	}
	if body == nil {
		body = make(map[string]json.RawMessage)
	}

	idJSON, _ := json.Marshal(doc.ID)
	revJSON, _ := json.Marshal(rev)
	body["_id"] = idJSON
	body["_rev"] = revJSON

	out, err := json.Marshal(body)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{ID: doc.ID, Rev: rev, Body: out}, nil
}

// Prepare validates doc and fills in a missing id.
func Prepare(doc domain.Document) (domain.Document, error) {
	if len(doc.Body) == 0 {
		return domain.Document{}, fmt.Errorf("%w: empty document body", domain.ErrInvalidInput)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	return doc, nil
}

// Failed builds the result of a document that could not be written.
func Failed(id string, err error) domain.WriteResult {
	return domain.WriteResult{ID: id, Error: "error", Reason: err.Error()}
}

package services

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
	"github.com/mukesh2006/medic/internal/core/ports/driving"
	"github.com/mukesh2006/medic/internal/lineage"
	"github.com/mukesh2006/medic/internal/logger"
)

// Ensure ContactService implements the interface.
var _ driving.ContactService = (*ContactService)(nil)

// ContactService saves contacts together with their new siblings and
// repeated children, keeping embedded lineages current.
type ContactService struct {
	store   driven.DocumentStore
	metrics driven.Metrics
	newID   func() string
	now     func() time.Time
	timeout time.Duration
}

// ContactOption configures a ContactService.
type ContactOption func(*ContactService)

// WithContactIDs sets the generator of new document ids.
func WithContactIDs(fn func() string) ContactOption {
	return func(s *ContactService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithContactClock sets the clock used for reported_date.
func WithContactClock(fn func() time.Time) ContactOption {
	return func(s *ContactService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithContactMetrics sets the metrics recorder.
func WithContactMetrics(m driven.Metrics) ContactOption {
	return func(s *ContactService) {
		s.metrics = metricsOrNop(m)
	}
}

// WithStoreTimeout bounds every save, get and list.
func WithStoreTimeout(d time.Duration) ContactOption {
	return func(s *ContactService) {
		s.timeout = d
	}
}

// NewContactService creates a new contact service.
func NewContactService(store driven.DocumentStore, opts ...ContactOption) *ContactService {
	s := &ContactService{
		store:   store,
		metrics: nopMetrics{},
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// refKind classifies a submitted relation value.
type refKind int

const (
	refNone refKind = iota
	refID
	refNew
	refParent
	refInline
)

type ref struct {
	kind   refKind
	id     string
	inline *domain.Contact
}

// fetchRequest asks for a stored contact to be placed into a relation.
type fetchRequest struct {
	id  string
	set func(*domain.Contact)
}

// Save merges sub into the contact docID, or into a new contact of
// contactType when docID is empty, and writes the contact with its siblings
// and repeated children in one bulk write.
//
// Relations are resolved in two phases. First the in-flight graph is built
// with live references between the submitted documents and the fetched
// relations. Then the lineage of every relation is computed, and only once
// all are known are they assigned, so no document observes a half-projected
// neighbour.
func (s *ContactService) Save(
	ctx context.Context,
	sub domain.ContactSubmission,
	docID, contactType string,
) (*domain.SaveResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	original, fields, err := s.load(ctx, docID, contactType)
	if err != nil {
		return nil, err
	}
	maps.Copy(fields, sub.Doc)
	if original == nil {
		fields["type"] = domain.TypeContact
		fields["contact_type"] = contactType
	}

	refs, err := takeRefs(fields, false)
	if err != nil {
		return nil, err
	}
	outer, err := domain.ContactFromFields(fields)
	if err != nil {
		return nil, err
	}
	if original != nil {
		outer.ID = original.ID
		outer.Rev = original.Rev
	} else {
		outer.Rev = ""
	}
	s.prepare(outer)

	var (
		siblings []*domain.Contact
		fetches  []fetchRequest
	)
	for _, field := range domain.RelationFields {
		r := refs[field]
		switch r.kind {
		case refNone:
			outer.SetRelation(field, nil)
		case refInline:
			outer.SetRelation(field, r.inline)
		case refNew:
			sib, sibFetches, err := s.attachSibling(outer, field, sub.Siblings[field])
			if err != nil {
				return nil, err
			}
			siblings = append(siblings, sib)
			fetches = append(fetches, sibFetches...)
		case refID:
			if original != nil {
				if prev := original.Relation(field); prev != nil && prev.ID == r.id {
					outer.SetRelation(field, prev)
					continue
				}
			}
			fetches = append(fetches, fetchRequest{
				id:  r.id,
				set: func(c *domain.Contact) { outer.SetRelation(field, c) },
			})
		}
	}

	repeats, err := s.repeats(outer, sub.Repeats)
	if err != nil {
		return nil, err
	}

	if err := s.fetchAll(ctx, fetches); err != nil {
		return nil, err
	}

	batch := make([]*domain.Contact, 0, 1+len(repeats)+len(siblings))
	batch = append(batch, outer)
	batch = append(batch, repeats...)
	batch = append(batch, siblings...)

	if err := project(batch); err != nil {
		return nil, err
	}
	return s.write(ctx, outer.ID, batch)
}

// load returns the original contact and its fields, or an empty field set
// for a new contact.
func (s *ContactService) load(ctx context.Context, docID, contactType string) (*domain.Contact, map[string]any, error) {
	if docID == "" {
		if contactType == "" {
			return nil, nil, fmt.Errorf("%w: contact type is required for a new contact", domain.ErrInvalidInput)
		}
		return nil, make(map[string]any), nil
	}

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, nil, storeErr(fmt.Errorf("loading contact %s: %w", docID, err))
	}
	original, err := domain.ContactFromDocument(*doc)
	if err != nil {
		return nil, nil, err
	}
	fields, err := original.Fields()
	if err != nil {
		return nil, nil, fmt.Errorf("reading contact %s: %w", docID, err)
	}
	return original, fields, nil
}

// attachSibling prepares the sibling submitted for field and links it to outer.
func (s *ContactService) attachSibling(
	outer *domain.Contact,
	field string,
	fields map[string]any,
) (*domain.Contact, []fetchRequest, error) {
	if fields == nil {
		return nil, nil, fmt.Errorf("%w: %s is NEW but no sibling was submitted", domain.ErrInvalidInput, field)
	}
	fields = maps.Clone(fields)

	refs, err := takeRefs(fields, true)
	if err != nil {
		return nil, nil, err
	}
	sib, err := domain.ContactFromFields(fields)
	if err != nil {
		return nil, nil, err
	}
	sib.Rev = ""
	s.prepare(sib)
	if sib.Type != "" && sib.Type != domain.TypeContact && sib.ContactType == "" {
		sib.ContactType = sib.Type
	}
	sib.Type = domain.TypeContact

	var fetches []fetchRequest
	for _, rf := range domain.RelationFields {
		r := refs[rf]
		switch r.kind {
		case refParent:
			// The outer document keeps a parentless copy; the sibling points
			// back at the live outer document.
			snapshot := sib.Clone()
			snapshot.Parent = nil
			outer.SetRelation(field, snapshot)
			sib.Parent = outer
		case refInline:
			sib.SetRelation(rf, r.inline)
		case refID:
			fetches = append(fetches, fetchRequest{
				id:  r.id,
				set: func(c *domain.Contact) { sib.SetRelation(rf, c) },
			})
		}
	}
	if refs[domain.RelationParent].kind != refParent {
		outer.SetRelation(field, sib)
	}
	return sib, fetches, nil
}

// repeats prepares the repeated children of outer.
func (s *ContactService) repeats(outer *domain.Contact, rep domain.Repeats) ([]*domain.Contact, error) {
	out := make([]*domain.Contact, 0, len(rep.ChildData))
	for i, fields := range rep.ChildData {
		fields = maps.Clone(fields)
		delete(fields, domain.RelationParent)
		child, err := domain.ContactFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("repeat %d: %w", i, err)
		}
		child.Rev = ""
		s.prepare(child)
		child.Parent = outer
		out = append(out, child)
	}
	return out, nil
}

// prepare assigns an id to new documents and stamps reported_date on
// documents that were never written.
func (s *ContactService) prepare(c *domain.Contact) {
	if c.ID == "" {
		c.ID = s.newID()
	}
	if c.Rev == "" {
		c.ReportedDate = s.now().UnixMilli()
	}
}

// fetchAll loads every requested relation concurrently and assigns them
// once all have arrived.
func (s *ContactService) fetchAll(ctx context.Context, reqs []fetchRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	var ids []string
	seen := make(map[string]bool)
	for _, r := range reqs {
		if !seen[r.id] {
			seen[r.id] = true
			ids = append(ids, r.id)
		}
	}

	found := make([]*domain.Contact, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			doc, err := s.store.Get(gctx, id)
			if err != nil {
				return storeErr(fmt.Errorf("fetching contact %s: %w", id, err))
			}
			c, err := domain.ContactFromDocument(*doc)
			if err != nil {
				return err
			}
			found[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	byID := make(map[string]*domain.Contact, len(ids))
	for i, id := range ids {
		byID[id] = found[i]
	}
	for _, r := range reqs {
		r.set(byID[r.id])
	}
	return nil
}

// project replaces every relation in batch by its lineage. All lineages are
// computed before any is assigned.
func project(batch []*domain.Contact) error {
	type assignment struct {
		doc   *domain.Contact
		field string
		rel   *domain.Contact
	}

	var pending []assignment
	for _, doc := range batch {
		for _, field := range domain.RelationFields {
			rel := doc.Relation(field)
			if rel == nil {
				continue
			}
			l, err := lineage.Extract(rel)
			if err != nil {
				return fmt.Errorf("projecting %s of %s: %w", field, doc.ID, err)
			}
			pending = append(pending, assignment{doc: doc, field: field, rel: l.AsContact()})
		}
	}
	for _, a := range pending {
		a.doc.SetRelation(a.field, a.rel)
	}
	return nil
}

// write stores batch and reports the per-document outcome.
func (s *ContactService) write(ctx context.Context, docID string, batch []*domain.Contact) (*domain.SaveResult, error) {
	docs := make([]domain.Document, 0, len(batch))
	for _, c := range batch {
		doc, err := domain.NewDocument(c)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	results, err := s.store.BulkWrite(ctx, docs)
	if err != nil {
		return nil, storeErr(fmt.Errorf("saving contact %s: %w", docID, err))
	}

	result := &domain.SaveResult{DocID: docID, Results: results}
	if batchErr := domain.NewBatchError(results); batchErr != nil {
		s.metrics.BatchFailed(len(batchErr.Failures))
		s.metrics.ContactsSaved(len(results) - len(batchErr.Failures))
		logger.Warn("%s", batchErr.Error())
		return result, batchErr
	}

	s.metrics.ContactsSaved(len(results))
	logger.Debug("saved contact %s with %d documents", docID, len(results))
	return result, nil
}

// takeRefs removes the relation keys from fields and classifies them.
// PARENT is only accepted in a sibling's parent field; NEW only on the
// primary document.
func takeRefs(fields map[string]any, sibling bool) (map[string]ref, error) {
	refs := make(map[string]ref, len(domain.RelationFields))
	for _, field := range domain.RelationFields {
		r, err := takeRef(fields, field)
		if err != nil {
			return nil, err
		}
		switch {
		case r.kind == refNew && sibling:
			return nil, fmt.Errorf("%w: sibling %s cannot be NEW", domain.ErrInvalidInput, field)
		case r.kind == refParent && (!sibling || field != domain.RelationParent):
			return nil, fmt.Errorf("%w: %s cannot be PARENT here", domain.ErrInvalidInput, field)
		}
		refs[field] = r
	}
	return refs, nil
}

func takeRef(fields map[string]any, field string) (ref, error) {
	val, ok := fields[field]
	delete(fields, field)
	if !ok || val == nil {
		return ref{}, nil
	}

	switch v := val.(type) {
	case string:
		switch strings.TrimSpace(v) {
		case "":
			return ref{}, nil
		case domain.RelationNew:
			return ref{kind: refNew}, nil
		case domain.RelationToParent:
			return ref{kind: refParent}, nil
		default:
			return ref{kind: refID, id: strings.TrimSpace(v)}, nil
		}
	case map[string]any:
		if id, ok := v["_id"].(string); ok && id != "" {
			return ref{kind: refID, id: id}, nil
		}
		c, err := domain.ContactFromFields(v)
		if err != nil {
			return ref{}, fmt.Errorf("%s: %w", field, err)
		}
		return ref{kind: refInline, inline: c}, nil
	case *domain.Contact:
		if v.ID != "" {
			return ref{kind: refID, id: v.ID}, nil
		}
		return ref{kind: refInline, inline: v}, nil
	default:
		return ref{}, fmt.Errorf("%w: unsupported %s value %T", domain.ErrInvalidInput, field, val)
	}
}

// Get retrieves a contact by ID.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: contact id is required", domain.ErrInvalidInput)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return domain.ContactFromDocument(*doc)
}

// ListSorted returns every indexed contact, living before dead, then by
// hierarchy level, then by name. Names are reported lower-cased as indexed.
func (s *ContactService) ListSorted(ctx context.Context) ([]driving.ContactSummary, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.store.QueryByKey(ctx, domain.IndexContactsByTypeIndexName, "")
	if err != nil {
		return nil, storeErr(fmt.Errorf("listing contacts: %w", err))
	}

	out := make([]driving.ContactSummary, 0, len(rows))
	for _, row := range rows {
		summary, ok := parseContactKey(row.Key)
		if !ok {
			logger.Warn("skipping malformed contacts index key %q for %s", row.Key, row.ID)
			continue
		}
		summary.ID = row.ID
		out = append(out, summary)
	}
	return out, nil
}

// parseContactKey reads a "<dead> <type index> <name>" index key.
func parseContactKey(key string) (driving.ContactSummary, bool) {
	parts := strings.SplitN(key, " ", 3)
	if len(parts) != 3 {
		return driving.ContactSummary{}, false
	}
	dead, err := strconv.ParseBool(parts[0])
	if err != nil {
		return driving.ContactSummary{}, false
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 0 || idx >= len(domain.ContactTypes) {
		return driving.ContactSummary{}, false
	}
	return driving.ContactSummary{
		Name: parts[2],
		Type: domain.ContactTypes[idx],
		Dead: dead,
	}, true
}

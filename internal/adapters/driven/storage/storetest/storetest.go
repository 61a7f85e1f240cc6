// Package storetest holds the conformance suite every driven.DocumentStore
// adapter runs in its own tests.
package storetest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Factory returns an empty store. The suite closes it.
type Factory func(t *testing.T) driven.DocumentStore

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s driven.DocumentStore)
	}{
		{"GetMissing", testGetMissing},
		{"CreateAndGet", testCreateAndGet},
		{"UpdateWithRev", testUpdateWithRev},
		{"StaleRevConflicts", testStaleRevConflicts},
		{"CreateExistingConflicts", testCreateExistingConflicts},
		{"PartialBatch", testPartialBatch},
		{"InvalidDocumentKeepsID", testInvalidDocumentKeepsID},
		{"FacilityByPhone", testFacilityByPhone},
		{"IndexFollowsUpdates", testIndexFollowsUpdates},
		{"ContactsByTypeIndexName", testContactsByTypeIndexName},
		{"UnknownIndex", testUnknownIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func doc(t *testing.T, v map[string]any) domain.Document {
	t.Helper()
	d, err := domain.NewDocument(v)
	require.NoError(t, err)
	return d
}

func write(t *testing.T, s driven.DocumentStore, docs ...domain.Document) []domain.WriteResult {
	t.Helper()
	results, err := s.BulkWrite(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, results, len(docs))
	return results
}

func testGetMissing(t *testing.T, s driven.DocumentStore) {
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testCreateAndGet(t *testing.T, s driven.DocumentStore) {
	results := write(t, s, doc(t, map[string]any{"_id": "a", "type": "person", "name": "Ann"}))
	require.True(t, results[0].OK)
	assert.Equal(t, "a", results[0].ID)
	assert.Regexp(t, `^1-[0-9a-f]+$`, results[0].Rev)

	got, err := s.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, results[0].Rev, got.Rev)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.Body, &body))
	assert.Equal(t, "Ann", body["name"])
	assert.Equal(t, results[0].Rev, body["_rev"])
}

func testUpdateWithRev(t *testing.T, s driven.DocumentStore) {
	first := write(t, s, doc(t, map[string]any{"_id": "a", "name": "v1"}))
	second := write(t, s, doc(t, map[string]any{"_id": "a", "_rev": first[0].Rev, "name": "v2"}))

	require.True(t, second[0].OK)
	assert.Regexp(t, `^2-`, second[0].Rev)

	got, err := s.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Contains(t, string(got.Body), `"v2"`)
}

func testStaleRevConflicts(t *testing.T, s driven.DocumentStore) {
	first := write(t, s, doc(t, map[string]any{"_id": "a", "name": "v1"}))
	write(t, s, doc(t, map[string]any{"_id": "a", "_rev": first[0].Rev, "name": "v2"}))

	stale := write(t, s, doc(t, map[string]any{"_id": "a", "_rev": first[0].Rev, "name": "v3"}))
	assert.False(t, stale[0].OK)
	assert.Equal(t, domain.WriteConflict, stale[0].Error)
}

func testCreateExistingConflicts(t *testing.T, s driven.DocumentStore) {
	write(t, s, doc(t, map[string]any{"_id": "a"}))

	again := write(t, s, doc(t, map[string]any{"_id": "a"}))
	assert.False(t, again[0].OK)
	assert.Equal(t, domain.WriteConflict, again[0].Error)
}

func testPartialBatch(t *testing.T, s driven.DocumentStore) {
	write(t, s, doc(t, map[string]any{"_id": "taken"}))

	results := write(t, s,
		doc(t, map[string]any{"_id": "x"}),
		doc(t, map[string]any{"_id": "taken"}),
		doc(t, map[string]any{"_id": "y"}),
	)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.True(t, results[2].OK)

	_, err := s.Get(context.Background(), "y")
	assert.NoError(t, err)
}

func testInvalidDocumentKeepsID(t *testing.T, s driven.DocumentStore) {
	results := write(t, s,
		domain.Document{ID: "empty"},
		doc(t, map[string]any{"_id": "ok"}),
	)
	assert.False(t, results[0].OK)
	assert.Equal(t, "empty", results[0].ID)
	assert.NotEmpty(t, results[0].Reason)
	assert.True(t, results[1].OK)

	err := domain.NewBatchError(results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"empty" failed with`)
}

func testFacilityByPhone(t *testing.T, s driven.DocumentStore) {
	write(t, s,
		doc(t, map[string]any{
			"_id": "clinic-b", "type": "clinic", "name": "B", "phone": "+1",
			"contact": map[string]any{"name": "Nurse", "phone": "+2"},
		}),
		doc(t, map[string]any{"_id": "clinic-a", "type": "contact", "contact_type": "clinic", "phone": "+1"}),
		doc(t, map[string]any{"_id": "rec", "type": "data_record", "from": "+1"}),
	)

	rows, err := s.QueryByKey(context.Background(), domain.IndexFacilityByPhone, "+1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "clinic-a", rows[0].ID)
	assert.Equal(t, "clinic-b", rows[1].ID)

	var value map[string]any
	require.NoError(t, json.Unmarshal(rows[1].Value, &value))
	assert.Equal(t, "B", value["name"])

	rows, err = s.QueryByKey(context.Background(), domain.IndexFacilityByPhone, "+2")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "clinic-b", rows[0].ID)

	rows, err = s.QueryByKey(context.Background(), domain.IndexFacilityByPhone, "+9")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func testIndexFollowsUpdates(t *testing.T, s driven.DocumentStore) {
	first := write(t, s, doc(t, map[string]any{"_id": "c", "type": "clinic", "phone": "+1"}))
	write(t, s, doc(t, map[string]any{"_id": "c", "_rev": first[0].Rev, "type": "clinic", "phone": "+3"}))

	rows, err := s.QueryByKey(context.Background(), domain.IndexFacilityByPhone, "+1")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = s.QueryByKey(context.Background(), domain.IndexFacilityByPhone, "+3")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func testContactsByTypeIndexName(t *testing.T, s driven.DocumentStore) {
	write(t, s,
		doc(t, map[string]any{"_id": "p1", "type": "person", "name": "Zed"}),
		doc(t, map[string]any{"_id": "p2", "type": "person", "name": "amy"}),
		doc(t, map[string]any{"_id": "dh", "type": "district_hospital", "name": "Central"}),
		doc(t, map[string]any{"_id": "dead", "type": "person", "name": "Old", "date_of_death": "2020-01-01"}),
		doc(t, map[string]any{"_id": "rec", "type": "data_record"}),
		doc(t, map[string]any{"_id": "home", "type": "contact", "contact_type": "household", "name": "Home"}),
		doc(t, map[string]any{"_id": "bare", "type": "contact", "name": "NoSubtype"}),
	)

	rows, err := s.QueryByKey(context.Background(), domain.IndexContactsByTypeIndexName, "")
	require.NoError(t, err)

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"dh", "p2", "p1", "dead"}, ids)
	assert.Equal(t, "false 1 central", rows[0].Key)
	assert.JSONEq(t, `"central"`, string(rows[0].Value))

	rows, err = s.QueryByKey(context.Background(), domain.IndexContactsByTypeIndexName, "false 4 zed")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].ID)
}

func testUnknownIndex(t *testing.T, s driven.DocumentStore) {
	_, err := s.QueryByKey(context.Background(), "nope", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

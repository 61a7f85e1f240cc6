package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/core/domain"
)

func TestNextRev(t *testing.T) {
	assert.Regexp(t, `^1-[0-9a-f]{32}$`, NextRev(""))
	assert.Regexp(t, `^4-[0-9a-f]{32}$`, NextRev("3-abc"))
	assert.NotEqual(t, NextRev("1-a"), NextRev("1-a"))
}

func TestRevGeneration(t *testing.T) {
	assert.Equal(t, 0, RevGeneration(""))
	assert.Equal(t, 0, RevGeneration("garbage"))
	assert.Equal(t, 0, RevGeneration("x-1"))
	assert.Equal(t, 12, RevGeneration("12-ff"))
}

func TestCheckRev(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		stored   string
		exists   bool
		ok       bool
	}{
		{"create new", "", "", false, true},
		{"update current", "1-a", "1-a", true, true},
		{"create existing", "", "1-a", true, false},
		{"stale update", "1-a", "2-b", true, false},
		{"update missing", "1-a", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := CheckRev("doc", tt.incoming, tt.stored, tt.exists)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				assert.Equal(t, domain.WriteConflict, res.Error)
				assert.Equal(t, "doc", res.ID)
			}
		})
	}
}

func TestWithRev(t *testing.T) {
	doc := domain.Document{ID: "a", Body: []byte(`{"name":"x"}`)}

	out, err := WithRev(doc, "1-f")
	require.NoError(t, err)
	assert.Equal(t, "1-f", out.Rev)
	assert.JSONEq(t, `{"_id":"a","_rev":"1-f","name":"x"}`, string(out.Body))

	_, err = WithRev(domain.Document{ID: "b", Body: []byte(`"str"`)}, "1-f")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrepare(t *testing.T) {
	doc, err := Prepare(domain.Document{Body: []byte(`{}`)})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)

	_, err = Prepare(domain.Document{ID: "a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRows(t *testing.T) {
	rows, err := Rows(domain.Document{ID: "c", Body: []byte(`{
		"_id": "c", "type": "contact", "contact_type": "health_center",
		"name": "North HC", "phone": "+1", "contact": {"phone": "+1"}
	}`)})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, domain.IndexFacilityByPhone, rows[0].Index)
	assert.Equal(t, "+1", rows[0].Key)
	assert.Equal(t, domain.IndexContactsByTypeIndexName, rows[1].Index)
	assert.Equal(t, "false 2 north hc", rows[1].Key)
	assert.JSONEq(t, `"north hc"`, string(rows[1].Value))
}

func TestRows_ContactTypeOutsideHierarchy(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown contact_type", `{"type":"contact","contact_type":"household","name":"Home"}`},
		{"missing contact_type", `{"type":"contact","name":"NoSubtype"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Rows(domain.Document{ID: "c", Body: []byte(tt.body)})
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestRows_ContactTypeOutsideHierarchyKeepsPhone(t *testing.T) {
	rows, err := Rows(domain.Document{ID: "c", Body: []byte(`{"type":"contact","contact_type":"chw_area","name":"A","phone":"+9"}`)})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, domain.IndexFacilityByPhone, rows[0].Index)
	assert.Equal(t, "+9", rows[0].Key)
}

func TestRows_NonContact(t *testing.T) {
	rows, err := Rows(domain.Document{ID: "r", Body: []byte(`{"type":"data_record","from":"+1"}`)})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

package lineage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/core/domain"
)

func hierarchy() *domain.Contact {
	district := &domain.Contact{
		ID:    "district",
		Type:  domain.TypeDistrictHospital,
		Name:  "District",
		Phone: "+1000",
		Extra: map[string]any{"notes": "secret"},
	}
	center := &domain.Contact{
		ID:      "center",
		Type:    domain.TypeHealthCenter,
		Name:    "Center",
		Parent:  district,
		Contact: &domain.Contact{ID: "boss", Name: "Boss", Type: domain.TypePerson, Phone: "+2000"},
	}
	return &domain.Contact{
		ID:           "clinic",
		Type:         domain.TypeContact,
		ContactType:  domain.TypeClinic,
		Name:         "Clinic",
		ReportedDate: 123,
		Parent:       center,
	}
}

func TestExtract(t *testing.T) {
	got, err := Extract(hierarchy())
	require.NoError(t, err)

	want := &domain.Lineage{
		ID:          "clinic",
		Name:        "Clinic",
		Type:        domain.TypeContact,
		ContactType: domain.TypeClinic,
		Parent: &domain.Lineage{
			ID:   "center",
			Name: "Center",
			Type: domain.TypeHealthCenter,
			Parent: &domain.Lineage{
				ID:   "district",
				Name: "District",
				Type: domain.TypeDistrictHospital,
			},
		},
	}
	assert.Equal(t, want, got)
}

func TestExtract_Nil(t *testing.T) {
	got, err := Extract(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProject_Idempotent(t *testing.T) {
	once, err := Extract(hierarchy())
	require.NoError(t, err)

	twice, err := Project(once)
	require.NoError(t, err)
	thrice, err := Project(twice)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, twice, thrice)
}

func TestEmbed_OnlyLineageKeys(t *testing.T) {
	embedded, err := Embed(hierarchy())
	require.NoError(t, err)

	body, err := json.Marshal(embedded)
	require.NoError(t, err)

	var node map[string]any
	require.NoError(t, json.Unmarshal(body, &node))

	allowed := map[string]bool{"_id": true, "name": true, "type": true, "contact_type": true, "parent": true}
	for depth := 0; node != nil; depth++ {
		for key := range node {
			assert.True(t, allowed[key], "unexpected key %q at depth %d", key, depth)
		}
		next, _ := node["parent"].(map[string]any)
		node = next
	}
}

func TestExtract_DepthCap(t *testing.T) {
	build := func(n int) *domain.Contact {
		var c *domain.Contact
		for i := 0; i < n; i++ {
			c = &domain.Contact{ID: string(rune('a' + i%26)), Parent: c}
		}
		return c
	}

	got, err := Extract(build(MaxDepth))
	require.NoError(t, err)
	assert.Equal(t, MaxDepth, got.Depth())

	_, err = Extract(build(MaxDepth + 1))
	assert.ErrorIs(t, err, domain.ErrLineageTooDeep)
}

func TestExtract_Cycle(t *testing.T) {
	a := &domain.Contact{ID: "a"}
	b := &domain.Contact{ID: "b", Parent: a}
	a.Parent = b

	_, err := Extract(a)
	assert.ErrorIs(t, err, domain.ErrLineageTooDeep)
}

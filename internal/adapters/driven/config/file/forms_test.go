package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/core/domain"
)

func TestLoadFormCatalog_Embedded(t *testing.T) {
	catalog, err := LoadFormCatalog("")
	require.NoError(t, err)

	assert.Equal(t, []string{"MSBB"}, catalog.Codes())

	schema, ok := catalog.Schema("msbb")
	require.True(t, ok)
	require.Len(t, schema.Fields, 9)
	assert.Equal(t, "ref_year", schema.Fields[0].Key)
	assert.Equal(t, domain.FieldInteger, schema.Fields[0].Type)
	assert.True(t, schema.Fields[0].Required)
	assert.Equal(t, "Année", schema.Fields[0].Label("fr"))

	reason := schema.Fields[7]
	assert.Equal(t, domain.FieldLookup, reason.Type)
	require.Len(t, reason.Lookup, 16)
	assert.Equal(t, "Autres", reason.Lookup[15])
}

func TestLoadFormCatalog_UserDirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "msbb.yaml"), []byte(`
code: msbb
fields:
  - key: only
    required: true
`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yyyy.yaml"), []byte(`
code: YYYY
fields:
  - key: count
    type: integer
`), 0600))

	catalog, err := LoadFormCatalog(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"MSBB", "YYYY"}, catalog.Codes())
	schema, ok := catalog.Schema("MSBB")
	require.True(t, ok)
	require.Len(t, schema.Fields, 1)
	assert.Equal(t, domain.FieldString, schema.Fields[0].Type)
}

func TestLoadFormCatalog_MissingDir(t *testing.T) {
	catalog, err := LoadFormCatalog(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Len(t, catalog.Codes(), 1)
}

func TestLoadFormCatalog_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("code: BAD\nfields:\n  - key: x\n    type: date\n"), 0600))

	_, err := LoadFormCatalog(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestParseFormSchema_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing code", "fields: []"},
		{"separator in code", "code: 'A!B'"},
		{"field without key", "code: X\nfields:\n  - type: string"},
		{"duplicate key", "code: X\nfields:\n  - key: a\n  - key: a"},
		{"lookup without values", "code: X\nfields:\n  - key: a\n    type: lookup"},
		{"not yaml", "code: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFormSchema([]byte(tt.yaml))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

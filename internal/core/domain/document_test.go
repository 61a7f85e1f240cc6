package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_ReadsIdentity(t *testing.T) {
	doc, err := NewDocument(map[string]any{"_id": "c1", "_rev": "2-ab", "name": "Alice"})
	require.NoError(t, err)

	assert.Equal(t, "c1", doc.ID)
	assert.Equal(t, "2-ab", doc.Rev)
	assert.JSONEq(t, `{"_id":"c1","_rev":"2-ab","name":"Alice"}`, string(doc.Body))
}

func TestNewDocument_WithoutIdentity(t *testing.T) {
	doc, err := NewDocument(map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.Empty(t, doc.ID)
	assert.Empty(t, doc.Rev)
}

func TestNewDocument_EncodeError(t *testing.T) {
	_, err := NewDocument(map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding document")
}

func TestDocumentFromJSON_Invalid(t *testing.T) {
	tests := []string{`{`, `[1,2]`, `"text"`}
	for _, body := range tests {
		_, err := DocumentFromJSON([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidInput, body)
	}
}

func TestDocument_Decode(t *testing.T) {
	doc, err := NewDocument(&Contact{ID: "c1", Type: TypePerson, Name: "Alice"})
	require.NoError(t, err)

	var c Contact
	require.NoError(t, doc.Decode(&c))
	assert.Equal(t, "Alice", c.Name)

	var n int
	err = doc.Decode(&n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding document c1")
}

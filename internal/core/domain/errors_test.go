package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrMalformedMessage", ErrMalformedMessage},
		{"ErrLineageTooDeep", ErrLineageTooDeep},
		{"ErrConflict", ErrConflict},
		{"ErrPartialBatch", ErrPartialBatch},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrMalformedMessage, ErrLineageTooDeep,
		ErrConflict, ErrPartialBatch, ErrStoreUnavailable,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetching contact hc: %w", ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "fetching contact hc")
}

func TestNewBatchError_AllOK(t *testing.T) {
	err := NewBatchError([]WriteResult{{ID: "a", OK: true}, {ID: "b", OK: true}})
	assert.Nil(t, err)

	assert.Nil(t, NewBatchError(nil))
}

func TestBatchError_Message(t *testing.T) {
	err := NewBatchError([]WriteResult{
		{ID: "a", OK: true},
		{ID: "b", Error: WriteConflict, Reason: "Document update conflict"},
		{ID: "c", Error: "forbidden"},
	})
	require.NotNil(t, err)

	assert.Equal(t,
		`Some documents did not save correctly: "b" failed with "Document update conflict"; "c" failed with "forbidden"`,
		err.Error())
	assert.Equal(t, []string{"b", "c"}, err.FailedIDs())
}

func TestBatchError_Unwrap(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		var err error = NewBatchError([]WriteResult{{ID: "a", Error: WriteConflict}})
		assert.ErrorIs(t, err, ErrPartialBatch)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("other failure", func(t *testing.T) {
		var err error = NewBatchError([]WriteResult{{ID: "a", Error: "error"}})
		assert.ErrorIs(t, err, ErrPartialBatch)
		assert.NotErrorIs(t, err, ErrConflict)
	})

	t.Run("through wrapping", func(t *testing.T) {
		err := fmt.Errorf("saving contact: %w", NewBatchError([]WriteResult{{ID: "a", Error: WriteConflict}}))
		var batchErr *BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Len(t, batchErr.Failures, 1)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

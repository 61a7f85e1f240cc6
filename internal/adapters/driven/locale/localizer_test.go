package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

func TestTranslate(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	tests := []struct {
		name   string
		locale string
		key    string
		args   []any
		want   string
	}{
		{"english ack", "en", driven.MsgFormReceived, nil, "Your form submission was received, thank you."},
		{"unknown locale falls back", "sw", driven.MsgFormReceived, nil, "Your form submission was received, thank you."},
		{"region stripped", "fr-CA", driven.MsgExtraFields, nil, "Champs supplémentaires."},
		{"with args", "en", driven.MsgInvalidInt, []any{"ref_age", "x"}, "Invalid integer for ref_age: x."},
		{"unknown key", "en", "nope", nil, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Translate(tt.locale, tt.key, tt.args...))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	got := l.FormatSummary("fr", []domain.LabeledValue{
		{Label: "Année", Value: "2012"},
		{Label: "Nom", Value: "bbbbbb"},
	})
	assert.Equal(t, "Année: 2012, Nom: bbbbbb", got)
	assert.Empty(t, l.FormatSummary("fr", nil))
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := FromYAML([]byte("en: [broken"))
	assert.Error(t, err)
}

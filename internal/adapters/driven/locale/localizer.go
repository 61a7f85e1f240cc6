// Package locale renders acknowledgement and summary text.
package locale

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Ensure Localizer implements the interface.
var _ driven.Localizer = (*Localizer)(nil)

// DefaultLocale is used when a message is missing in the requested locale.
const DefaultLocale = "en"

//go:embed messages.yaml
var defaultMessages []byte

// Localizer looks up message templates by locale and key.
type Localizer struct {
	messages map[string]map[string]string
}

// New creates a localizer with the built-in translations.
func New() (*Localizer, error) {
	return FromYAML(defaultMessages)
}

// FromYAML creates a localizer from a locale -> key -> template document.
func FromYAML(data []byte) (*Localizer, error) {
	var messages map[string]map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse messages: %w", err)
	}
	if messages == nil {
		messages = make(map[string]map[string]string)
	}
	return &Localizer{messages: messages}, nil
}

// Translate returns the message for key in locale.
func (l *Localizer) Translate(locale, key string, args ...any) string {
	tmpl, ok := l.lookup(locale, key)
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// FormatSummary renders pairs as "label: value" joined by ", ".
func (l *Localizer) FormatSummary(_ string, pairs []domain.LabeledValue) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Label+": "+p.Value)
	}
	return strings.Join(parts, ", ")
}

// Locales returns the locales with at least one message.
func (l *Localizer) Locales() []string {
	out := make([]string, 0, len(l.messages))
	for loc := range l.messages {
		out = append(out, loc)
	}
	return out
}

func (l *Localizer) lookup(locale, key string) (string, bool) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		if tmpl, ok := l.messages[locale][key]; ok {
			return tmpl, true
		}
		locale = locale[:i]
	}
	if tmpl, ok := l.messages[locale][key]; ok {
		return tmpl, true
	}
	tmpl, ok := l.messages[DefaultLocale][key]
	return tmpl, ok
}

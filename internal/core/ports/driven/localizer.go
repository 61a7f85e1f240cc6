package driven

import "github.com/mukesh2006/medic/internal/core/domain"

// Message keys understood by a Localizer.
const (
	MsgFormReceived = "form_received"
	MsgUnknownForm  = "unknown_form"
	MsgMissingField = "missing_field"
	MsgInvalidInt   = "invalid_integer"
	MsgExtraFields  = "extra_fields"
)

// Localizer renders user-facing text.
type Localizer interface {
	// Translate returns the message for key in locale, falling back to
	// English and then to the key itself. Args are applied with fmt verbs.
	Translate(locale, key string, args ...any) string

	// FormatSummary renders labelled values as "label: value" pairs joined by ", ".
	FormatSummary(locale string, pairs []domain.LabeledValue) string
}

package domain

import "strings"

// FieldType is the declared type of a form field.
type FieldType string

// Supported field types.
const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
	FieldLookup  FieldType = "lookup"
)

// IsValid returns true if the field type is recognised.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldString, FieldInteger, FieldLookup:
		return true
	default:
		return false
	}
}

// FieldDef describes one positional field of an SMS form.
type FieldDef struct {
	// Key is the name the parsed value is stored under, e.g. "ref_year".
	Key string

	// Type controls coercion of the raw token.
	Type FieldType

	// Required fields produce a missing_field error when empty or absent.
	Required bool

	// Labels maps a locale to the human-readable field label.
	Labels map[string]string

	// Lookup is the enumerated table indexed by the token for lookup fields.
	Lookup []string
}

// Label returns the label for locale, falling back to English, then to the key.
func (f FieldDef) Label(locale string) string {
	if l, ok := f.Labels[locale]; ok && l != "" {
		return l
	}
	if l, ok := f.Labels["en"]; ok && l != "" {
		return l
	}
	return f.Key
}

// FormSchema is the ordered field list of an SMS form.
// Schemas are loaded once at startup and never mutated.
type FormSchema struct {
	// Code identifies the form in the message envelope, e.g. "MSBB".
	Code string

	// Title is a descriptive name of the form.
	Title string

	// Fields are consumed positionally, one token each.
	Fields []FieldDef
}

// NormaliseFormCode upper-cases and trims a form code.
func NormaliseFormCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LabeledValue pairs a localized label with a rendered value.
type LabeledValue struct {
	Label string
	Value string
}

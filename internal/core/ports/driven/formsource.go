package driven

import "github.com/mukesh2006/medic/internal/core/domain"

// FormSchemaSource provides the immutable catalog of SMS form schemas.
// Safe for concurrent use.
type FormSchemaSource interface {
	// Schema returns the schema for a normalised form code.
	Schema(code string) (*domain.FormSchema, bool)

	// Codes returns all known form codes, sorted.
	Codes() []string
}

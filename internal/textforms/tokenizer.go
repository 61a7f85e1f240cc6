package textforms

import (
	"fmt"
	"strings"

	"github.com/mukesh2006/medic/internal/core/domain"
)

const (
	segmentSep = "!"
	fieldSep   = "#"
)

// Envelope is a tokenized message body.
type Envelope struct {
	Version  string
	FormCode string

	// Tokens are the raw field values in message order. Empty tokens are kept.
	Tokens []string
}

// Tokenize splits body into its envelope and field tokens.
// It fails with domain.ErrMalformedMessage when the version or form code is missing.
func Tokenize(body string) (Envelope, error) {
	parts := strings.SplitN(strings.TrimSpace(body), segmentSep, 3)
	if len(parts) < 2 {
		return Envelope{}, fmt.Errorf("%w: expected <version>!<form>!<fields>", domain.ErrMalformedMessage)
	}

	env := Envelope{
		Version:  strings.TrimSpace(parts[0]),
		FormCode: domain.NormaliseFormCode(parts[1]),
	}
	if env.Version == "" {
		return Envelope{}, fmt.Errorf("%w: empty version", domain.ErrMalformedMessage)
	}
	if env.FormCode == "" {
		return Envelope{}, fmt.Errorf("%w: empty form code", domain.ErrMalformedMessage)
	}

	if len(parts) == 3 && parts[2] != "" {
		env.Tokens = strings.Split(parts[2], fieldSep)
	}
	return env, nil
}

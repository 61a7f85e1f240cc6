package textforms

import (
	"context"
	"fmt"

	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.FormParser = (*Parser)(nil)

// Parser matches SMS bodies against a form catalog.
type Parser struct {
	forms   driven.FormSchemaSource
	builder *Builder
}

// NewParser creates a parser over forms that acknowledges in locale.
func NewParser(forms driven.FormSchemaSource, localizer driven.Localizer, locale string, opts ...Option) *Parser {
	return &Parser{
		forms:   forms,
		builder: NewBuilder(localizer, locale, opts...),
	}
}

// Parse builds the data record for msg.
func (p *Parser) Parse(_ context.Context, msg *domain.RawMessage) (*domain.DataRecord, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", domain.ErrInvalidInput)
	}

	env, err := Tokenize(msg.Message)
	if err != nil {
		return nil, err
	}

	schema, ok := p.forms.Schema(env.FormCode)
	if !ok {
		schema = nil
	}
	return p.builder.Build(msg, env, schema), nil
}

package textforms

import (
	"strconv"
	"strings"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// FieldError is a coercion problem for one schema field.
type FieldError struct {
	Code  string
	Key   string
	Token string
}

// Coerced is the typed result of matching tokens against a schema.
type Coerced struct {
	// Fields holds values by key. Absent optional fields are missing.
	Fields map[string]domain.Value

	// Order lists the keys of Fields in schema order.
	Order []string

	Errors []FieldError

	// Extra counts tokens beyond the last schema field.
	Extra int
}

// Coerce converts tokens positionally according to schema. It never fails.
func Coerce(schema *domain.FormSchema, tokens []string) Coerced {
	out := Coerced{Fields: make(map[string]domain.Value, len(schema.Fields))}

	for i, field := range schema.Fields {
		if i >= len(tokens) {
			if field.Required {
				out.set(field.Key, domain.Null())
				out.Errors = append(out.Errors, FieldError{Code: domain.CodeMissingField, Key: field.Key})
			}
			continue
		}

		tok := tokens[i]
		if strings.TrimSpace(tok) == "" {
			out.set(field.Key, domain.Null())
			if field.Required {
				out.Errors = append(out.Errors, FieldError{Code: domain.CodeMissingField, Key: field.Key})
			}
			continue
		}

		val, ok := coerceToken(field, tok)
		if !ok {
			out.Errors = append(out.Errors, FieldError{Code: domain.CodeInvalidInteger, Key: field.Key, Token: tok})
		}
		out.set(field.Key, val)
	}

	if surplus := len(tokens) - len(schema.Fields); surplus > 0 {
		out.Extra = surplus
	}
	return out
}

func (c *Coerced) set(key string, v domain.Value) {
	if _, seen := c.Fields[key]; !seen {
		c.Order = append(c.Order, key)
	}
	c.Fields[key] = v
}

// coerceToken returns false only for unparseable integers.
func coerceToken(field domain.FieldDef, tok string) (domain.Value, bool) {
	switch field.Type {
	case domain.FieldInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return domain.Null(), false
		}
		return domain.IntegerValue(n), true

	case domain.FieldLookup:
		code := strings.TrimSpace(tok)
		if idx, err := strconv.Atoi(code); err == nil && idx >= 0 && idx < len(field.Lookup) {
			return domain.LookupValue(code, field.Lookup[idx]), true
		}
		// Unknown codes pass through so newer phones keep working.
		return domain.LookupValue(tok, tok), true

	default:
		return domain.StringValue(tok), true
	}
}

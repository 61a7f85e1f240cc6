package domain

import (
	"encoding/json"
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	// KindNull is an explicitly empty field.
	KindNull ValueKind = iota

	// KindString is free text.
	KindString

	// KindInteger is a base-10 integer.
	KindInteger

	// KindLookup is an entry of a form's enumerated table.
	KindLookup
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// Value is a typed form field value.
type Value struct {
	Kind ValueKind

	// Str holds the text for KindString and the label for KindLookup.
	Str string

	// Int holds the number for KindInteger.
	Int int64

	// Code holds the raw token for KindLookup.
	Code string
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntegerValue returns an integer value.
func IntegerValue(n int64) Value { return Value{Kind: KindInteger, Int: n} }

// LookupValue returns a lookup value with its raw code and resolved label.
func LookupValue(code, label string) Value { return Value{Kind: KindLookup, Code: code, Str: label} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value for humans. Null renders as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindString, KindLookup:
		return v.Str
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	default:
		return ""
	}
}

// MarshalJSON encodes null as null, integers as numbers and the rest as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString, KindLookup:
		return json.Marshal(v.Str)
	case KindInteger:
		return json.Marshal(v.Int)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a stored value. Lookups come back as strings since
// the stored form only keeps the label.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = StringValue(x)
	case float64:
		*v = IntegerValue(int64(x))
	default:
		*v = StringValue(string(data))
	}
	return nil
}

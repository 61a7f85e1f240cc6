package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Contact document types.
const (
	// TypeContact is the generic type of configurable contacts; the
	// concrete kind is held in ContactType.
	TypeContact = "contact"

	TypeDistrictHospital = "district_hospital"
	TypeHealthCenter     = "health_center"
	TypeClinic           = "clinic"
	TypePerson           = "person"
)

// ContactTypes is the sort order of the contacts index.
var ContactTypes = []string{TypeContact, TypeDistrictHospital, TypeHealthCenter, TypeClinic, TypePerson}

// Relation field names of a contact.
const (
	RelationParent  = "parent"
	RelationContact = "contact"
)

// RelationFields are the contact keys holding references to other contacts.
var RelationFields = []string{RelationParent, RelationContact}

// Contact is a node of the facility hierarchy.
//
// Parent and Contact hold whatever the store returned: lineage snapshots
// for documents written by the save orchestrator, fully embedded objects
// for legacy documents, or a bare id when the stored value was a string.
type Contact struct {
	ID           string
	Rev          string
	Type         string
	ContactType  string
	Name         string
	Phone        string
	DateOfDeath  string
	ReportedDate int64
	Parent       *Contact
	Contact      *Contact

	// Extra holds every other top-level key of the document.
	Extra map[string]any
}

// EffectiveType returns ContactType for generic contacts and Type otherwise.
func (c *Contact) EffectiveType() string {
	if c.Type == TypeContact {
		return c.ContactType
	}
	return c.Type
}

// IsClinic reports whether the contact is a clinic.
func (c *Contact) IsClinic() bool {
	return c.EffectiveType() == TypeClinic
}

// Relation returns the contact held under a relation field.
func (c *Contact) Relation(field string) *Contact {
	switch field {
	case RelationParent:
		return c.Parent
	case RelationContact:
		return c.Contact
	default:
		return nil
	}
}

// SetRelation replaces the contact held under a relation field.
func (c *Contact) SetRelation(field string, rel *Contact) {
	switch field {
	case RelationParent:
		c.Parent = rel
	case RelationContact:
		c.Contact = rel
	}
}

// Clone returns a shallow copy. Relations are shared, Extra is copied.
func (c *Contact) Clone() *Contact {
	cp := *c
	if c.Extra != nil {
		cp.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}

// Fields returns the document as a generic top-level map.
func (c *Contact) Fields() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ContactFromFields decodes a generic top-level map into a Contact.
func ContactFromFields(fields map[string]any) (*Contact, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var c Contact
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &c, nil
}

// ContactFromDocument decodes a stored document.
func ContactFromDocument(doc Document) (*Contact, error) {
	var c Contact
	if err := doc.Decode(&c); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = doc.ID
	}
	if c.Rev == "" {
		c.Rev = doc.Rev
	}
	return &c, nil
}

// MarshalJSON writes known keys over Extra, omitting empty ones.
func (c Contact) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+10)
	for k, v := range c.Extra {
		out[k] = v
	}
	putString(out, "_id", c.ID)
	putString(out, "_rev", c.Rev)
	putString(out, "type", c.Type)
	putString(out, "contact_type", c.ContactType)
	putString(out, "name", c.Name)
	putString(out, "phone", c.Phone)
	putString(out, "date_of_death", c.DateOfDeath)
	if c.ReportedDate != 0 {
		out["reported_date"] = c.ReportedDate
	}
	if c.Parent != nil {
		out[RelationParent] = c.Parent
	}
	if c.Contact != nil {
		out[RelationContact] = c.Contact
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads known keys and keeps the rest in Extra.
// A relation stored as a plain string decodes as a contact holding only that id.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Contact{}
	for key, val := range raw {
		var err error
		switch key {
		case "_id":
			c.ID, err = decodeString(val)
		case "_rev":
			c.Rev, err = decodeString(val)
		case "type":
			c.Type, err = decodeString(val)
		case "contact_type":
			c.ContactType, err = decodeString(val)
		case "name":
			c.Name, err = decodeString(val)
		case "phone":
			c.Phone, err = decodeString(val)
		case "date_of_death":
			c.DateOfDeath, err = decodeString(val)
		case "reported_date":
			c.ReportedDate, err = decodeMillis(val)
		case RelationParent:
			c.Parent, err = decodeRelation(val)
		case RelationContact:
			c.Contact, err = decodeRelation(val)
		default:
			var v any
			err = json.Unmarshal(val, &v)
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[key] = v
		}
		if err != nil {
			return fmt.Errorf("decoding contact key %s: %w", key, err)
		}
	}
	return nil
}

func putString(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

// decodeString accepts strings, numbers and booleans.
func decodeString(val json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(val, &v); err != nil {
		return "", err
	}
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("unexpected %T", v)
	}
}

func decodeMillis(val json.RawMessage) (int64, error) {
	var v any
	if err := json.Unmarshal(val, &v); err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int64(x), nil
	case string:
		if x == "" {
			return 0, nil
		}
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}

func decodeRelation(val json.RawMessage) (*Contact, error) {
	var v any
	if err := json.Unmarshal(val, &v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		if x == "" {
			return nil, nil
		}
		return &Contact{ID: x}, nil
	case map[string]any:
		var rel Contact
		if err := json.Unmarshal(val, &rel); err != nil {
			return nil, err
		}
		return &rel, nil
	default:
		return nil, fmt.Errorf("unexpected %T", v)
	}
}

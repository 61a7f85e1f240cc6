package domain

// Lineage is the reduced ancestor chain of a contact.
// It is the only shape written under a contact's relation keys.
type Lineage struct {
	ID          string   `json:"_id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	ContactType string   `json:"contact_type,omitempty"`
	Parent      *Lineage `json:"parent,omitempty"`
}

// AsContact converts the snapshot into a Contact carrying only lineage
// fields, ready to be embedded in a document.
func (l *Lineage) AsContact() *Contact {
	if l == nil {
		return nil
	}
	return &Contact{
		ID:          l.ID,
		Name:        l.Name,
		Type:        l.Type,
		ContactType: l.ContactType,
		Parent:      l.Parent.AsContact(),
	}
}

// Depth returns the number of nodes in the chain.
func (l *Lineage) Depth() int {
	n := 0
	for cur := l; cur != nil; cur = cur.Parent {
		n++
	}
	return n
}

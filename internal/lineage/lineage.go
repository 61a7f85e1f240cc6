// Package lineage reduces contact parent chains to embeddable snapshots.
//
// A saved contact never embeds another contact in full: its parent and
// contact relations are replaced by a Lineage holding only the id, name,
// type and the lineage of the parent, recursively.
package lineage

import (
	"fmt"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// MaxDepth bounds the number of nodes in a lineage chain.
const MaxDepth = 20

// Extract projects c and its ancestors. A nil contact yields a nil lineage.
// Chains longer than MaxDepth fail with domain.ErrLineageTooDeep, which
// also catches parent cycles.
func Extract(c *domain.Contact) (*domain.Lineage, error) {
	return extract(c, 0)
}

func extract(c *domain.Contact, depth int) (*domain.Lineage, error) {
	if c == nil {
		return nil, nil
	}
	if depth >= MaxDepth {
		return nil, fmt.Errorf("%w: more than %d ancestors from %q", domain.ErrLineageTooDeep, MaxDepth, c.ID)
	}

	parent, err := extract(c.Parent, depth+1)
	if err != nil {
		return nil, err
	}
	return &domain.Lineage{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		ContactType: c.ContactType,
		Parent:      parent,
	}, nil
}

// Project re-projects an existing lineage. Projecting a projection returns
// an equal structure.
func Project(l *domain.Lineage) (*domain.Lineage, error) {
	return Extract(l.AsContact())
}

// Embed returns the contact form of c's lineage, ready to be stored under a
// relation key.
func Embed(c *domain.Contact) (*domain.Contact, error) {
	l, err := Extract(c)
	if err != nil {
		return nil, err
	}
	return l.AsContact(), nil
}

package domain

// Relation sentinels accepted in submitted contact fields.
const (
	// RelationNew refers to the sibling submitted under the same key.
	RelationNew = "NEW"

	// RelationToParent, used inside a sibling, refers back to the outer document.
	RelationToParent = "PARENT"
)

// Repeats holds repeated child records of a submission.
type Repeats struct {
	ChildData []map[string]any `json:"child_data,omitempty"`
}

// ContactSubmission is the parsed result of an interactive contact form.
// Values are generic maps because forms carry arbitrary user-defined keys.
type ContactSubmission struct {
	// Doc holds the fields of the primary contact.
	Doc map[string]any `json:"doc"`

	// Siblings are new contacts created alongside the primary one, keyed
	// by the relation field they fill ("parent", "contact").
	Siblings map[string]map[string]any `json:"siblings,omitempty"`

	// Repeats are child records whose parent is the primary contact.
	Repeats Repeats `json:"repeats,omitempty"`
}

// SaveResult reports the outcome of a contact save.
type SaveResult struct {
	// DocID is the id of the primary contact.
	DocID string `json:"doc_id"`

	// Results has one entry per written document, in batch order.
	Results []WriteResult `json:"results"`
}

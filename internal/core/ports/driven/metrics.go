package driven

// Metrics records operational counters.
// Implementations must be safe for concurrent use.
type Metrics interface {
	// RecordReceived counts a parsed SMS submission by form code.
	RecordReceived(form string)

	// RecordError counts a record error by code, e.g. "missing_field".
	RecordError(code string)

	// ContactsSaved counts documents written by a contact save.
	ContactsSaved(n int)

	// BatchFailed counts documents rejected by a bulk write.
	BatchFailed(n int)
}

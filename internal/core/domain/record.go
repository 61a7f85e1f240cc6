package domain

// TypeDataRecord is the document type of parsed SMS submissions.
const TypeDataRecord = "data_record"

// TaskStatePending marks a task not yet picked up by the outbound channel.
const TaskStatePending = "pending"

// RecordError is an informational problem attached to a DataRecord.
type RecordError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is an outbound message tuple. Delivery is external.
type Response struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Task is a group of outbound messages to be sent on behalf of a record.
type Task struct {
	State    string     `json:"state"`
	Messages []Response `json:"messages"`
}

// RelatedEntities holds references resolved after parsing.
type RelatedEntities struct {
	// Clinic is the facility registered with the sender's phone, if any.
	Clinic *Contact `json:"clinic"`
}

// DataRecord is the canonical representation of one SMS form submission.
type DataRecord struct {
	ID              string           `json:"_id"`
	Rev             string           `json:"_rev,omitempty"`
	Type            string           `json:"type"`
	Form            string           `json:"form"`
	From            string           `json:"from"`
	SMSMessage      RawMessage       `json:"sms_message"`
	Fields          map[string]Value `json:"fields"`
	Errors          []RecordError    `json:"errors"`
	Responses       []Response       `json:"responses"`
	Tasks           []Task           `json:"tasks"`
	ReportedDate    int64            `json:"reported_date"`
	RelatedEntities RelatedEntities  `json:"related_entities"`

	// FieldOrder lists the keys of Fields in schema order.
	FieldOrder []string `json:"-"`
}

// NewDataRecord returns an empty record with non-nil collections so it
// encodes as empty lists rather than nulls.
func NewDataRecord(id string) *DataRecord {
	return &DataRecord{
		ID:        id,
		Type:      TypeDataRecord,
		Fields:    make(map[string]Value),
		Errors:    []RecordError{},
		Responses: []Response{},
		Tasks:     []Task{},
	}
}

// AddError appends an error entry.
func (r *DataRecord) AddError(code, message string) {
	r.Errors = append(r.Errors, RecordError{Code: code, Message: message})
}

// HasError reports whether an error with code is attached.
func (r *DataRecord) HasError(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Field returns the value stored under key and whether it is present.
func (r *DataRecord) Field(key string) (Value, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// SubmitSMSInput is the input schema for the submit_sms tool.
type SubmitSMSInput struct {
	From          string `json:"from" jsonschema:"the sender phone number"`
	Message       string `json:"message" jsonschema:"the SMS body, e.g. 1!MSBB!2012#1#24#..."`
	SentTimestamp string `json:"sent_timestamp,omitempty" jsonschema:"send time reported by the phone"`
	Preview       bool   `json:"preview,omitempty" jsonschema:"parse without storing the record"`
}

// SubmitSMSOutput is the output schema for the submit_sms tool.
type SubmitSMSOutput struct {
	RecordID string            `json:"record_id"`
	Form     string            `json:"form"`
	Stored   bool              `json:"stored"`
	Fields   map[string]any    `json:"fields"`
	Errors   []RecordErrOutput `json:"errors"`
	Messages []MessageOutput   `json:"messages"`
	ClinicID string            `json:"clinic_id,omitempty"`
}

// RecordErrOutput is one error attached to a record.
type RecordErrOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageOutput is one outbound message.
type MessageOutput struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SaveContactInput is the input schema for the save_contact tool.
type SaveContactInput struct {
	ID        string                    `json:"id,omitempty" jsonschema:"id of the contact to update; empty creates a new contact"`
	Type      string                    `json:"type,omitempty" jsonschema:"contact type of a new contact, e.g. person"`
	Doc       map[string]any            `json:"doc" jsonschema:"fields of the contact; parent/contact may be an id or NEW"`
	Siblings  map[string]map[string]any `json:"siblings,omitempty" jsonschema:"new contacts keyed by the relation they fill"`
	ChildData []map[string]any          `json:"child_data,omitempty" jsonschema:"repeated child contacts"`
}

// SaveContactOutput is the output schema for the save_contact tool.
type SaveContactOutput struct {
	DocID   string              `json:"doc_id"`
	Results []WriteResultOutput `json:"results"`
}

// WriteResultOutput is the outcome of one written document.
type WriteResultOutput struct {
	ID     string `json:"id"`
	Rev    string `json:"rev,omitempty"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// GetContactInput is the input schema for the get_contact tool.
type GetContactInput struct {
	ID string `json:"id" jsonschema:"the contact id"`
}

// GetContactOutput is the output schema for the get_contact tool.
type GetContactOutput struct {
	Contact map[string]any `json:"contact"`
}

// ListContactsInput is the input schema for the list_contacts tool.
type ListContactsInput struct {
	IncludeDead bool `json:"include_dead,omitempty" jsonschema:"include contacts with a date of death"`
}

// ListContactsOutput is the output schema for the list_contacts tool.
type ListContactsOutput struct {
	Contacts []ContactRowOutput `json:"contacts"`
	Count    int                `json:"count"`
}

// ContactRowOutput is one contact of the listing.
type ContactRowOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Dead bool   `json:"dead,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_sms",
		Description: "Parse an SMS form submission, link it to the sender's facility and store it",
	}, s.handleSubmitSMS)

	if s.ports.Contacts == nil {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_contact",
		Description: "Create or update a contact together with new siblings and repeated children",
	}, s.handleSaveContact)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Fetch a contact by id",
	}, s.handleGetContact)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List contacts ordered by hierarchy level and name",
	}, s.handleListContacts)
}

// handleSubmitSMS handles the submit_sms tool invocation.
func (s *Server) handleSubmitSMS(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubmitSMSInput,
) (*mcp.CallToolResult, SubmitSMSOutput, error) {
	msg := &domain.RawMessage{
		From:          input.From,
		Message:       input.Message,
		SentTimestamp: input.SentTimestamp,
		ReceivedAt:    time.Now(),
	}

	var (
		rec *domain.DataRecord
		err error
	)
	if input.Preview {
		rec, err = s.ports.Intake.Preview(ctx, msg)
	} else {
		rec, err = s.ports.Intake.Receive(ctx, msg)
	}
	if err != nil {
		return nil, SubmitSMSOutput{}, err
	}

	output := SubmitSMSOutput{
		RecordID: rec.ID,
		Form:     rec.Form,
		Stored:   !input.Preview,
		Fields:   make(map[string]any, len(rec.Fields)),
		Errors:   make([]RecordErrOutput, len(rec.Errors)),
		Messages: make([]MessageOutput, 0, len(rec.Responses)),
	}
	for k, v := range rec.Fields {
		output.Fields[k] = fieldValue(v)
	}
	for i, e := range rec.Errors {
		output.Errors[i] = RecordErrOutput{Code: e.Code, Message: e.Message}
	}
	for _, r := range rec.Responses {
		output.Messages = append(output.Messages, MessageOutput{To: r.To, Message: r.Message})
	}
	for _, task := range rec.Tasks {
		for _, m := range task.Messages {
			output.Messages = append(output.Messages, MessageOutput{To: m.To, Message: m.Message})
		}
	}
	if rec.RelatedEntities.Clinic != nil {
		output.ClinicID = rec.RelatedEntities.Clinic.ID
	}
	return nil, output, nil
}

func fieldValue(v domain.Value) any {
	switch v.Kind {
	case domain.KindInteger:
		return v.Int
	case domain.KindString, domain.KindLookup:
		return v.Str
	default:
		return nil
	}
}

// handleSaveContact handles the save_contact tool invocation.
func (s *Server) handleSaveContact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveContactInput,
) (*mcp.CallToolResult, SaveContactOutput, error) {
	if input.Doc == nil {
		input.Doc = map[string]any{}
	}
	sub := domain.ContactSubmission{
		Doc:      input.Doc,
		Siblings: input.Siblings,
		Repeats:  domain.Repeats{ChildData: input.ChildData},
	}

	result, err := s.ports.Contacts.Save(ctx, sub, input.ID, input.Type)
	if err != nil {
		return nil, SaveContactOutput{}, fmt.Errorf("saving contact: %w", err)
	}

	output := SaveContactOutput{
		DocID:   result.DocID,
		Results: make([]WriteResultOutput, len(result.Results)),
	}
	for i, r := range result.Results {
		output.Results[i] = WriteResultOutput{ID: r.ID, Rev: r.Rev, OK: r.OK, Reason: r.Reason}
	}
	return nil, output, nil
}

// handleGetContact handles the get_contact tool invocation.
func (s *Server) handleGetContact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetContactInput,
) (*mcp.CallToolResult, GetContactOutput, error) {
	c, err := s.ports.Contacts.Get(ctx, input.ID)
	if err != nil {
		return nil, GetContactOutput{}, err
	}
	fields, err := c.Fields()
	if err != nil {
		return nil, GetContactOutput{}, fmt.Errorf("encoding contact: %w", err)
	}
	return nil, GetContactOutput{Contact: fields}, nil
}

// handleListContacts handles the list_contacts tool invocation.
func (s *Server) handleListContacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListContactsInput,
) (*mcp.CallToolResult, ListContactsOutput, error) {
	list, err := s.ports.Contacts.ListSorted(ctx)
	if err != nil {
		return nil, ListContactsOutput{}, err
	}

	output := ListContactsOutput{Contacts: make([]ContactRowOutput, 0, len(list))}
	for _, c := range list {
		if c.Dead && !input.IncludeDead {
			continue
		}
		output.Contacts = append(output.Contacts, ContactRowOutput{ID: c.ID, Name: c.Name, Type: c.Type, Dead: c.Dead})
	}
	output.Count = len(output.Contacts)
	return nil, output, nil
}

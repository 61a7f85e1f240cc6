package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mukesh2006/medic/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for medic resources.
	uriScheme = "medic://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing the SMS forms.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "forms",
		Name:        "forms",
		Description: "SMS forms understood by the intake parser",
		MIMEType:    "application/json",
	}, s.handleFormsResource)

	// Template for stored data records.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "records/{recordId}",
		Name:        "data-record",
		Description: "A stored SMS data record",
		MIMEType:    "application/json",
	}, s.handleRecordResource)

	// Template for contacts.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "contacts/{contactId}",
		Name:        "contact",
		Description: "A contact of the facility hierarchy",
		MIMEType:    "application/json",
	}, s.handleContactResource)
}

// handleFormsResource returns the known forms with their fields.
func (s *Server) handleFormsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type formInfo struct {
		Code   string   `json:"code"`
		Title  string   `json:"title,omitempty"`
		Fields []string `json:"fields"`
	}

	infos := []formInfo{}
	if s.ports.Forms != nil {
		for _, code := range s.ports.Forms.Codes() {
			schema, ok := s.ports.Forms.Schema(code)
			if !ok {
				continue
			}
			info := formInfo{Code: schema.Code, Title: schema.Title, Fields: make([]string, len(schema.Fields))}
			for i, f := range schema.Fields {
				info.Fields[i] = f.Key
			}
			infos = append(infos, info)
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleRecordResource returns a stored data record.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract recordId from URI: medic://records/{recordId}
	id := extractID(req.Params.URI, "records/")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Intake.GetRecord(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}
	return jsonResource(req.Params.URI, rec)
}

// handleContactResource returns a contact.
func (s *Server) handleContactResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Contacts == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractID(req.Params.URI, "contacts/")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	c, err := s.ports.Contacts.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}
	return jsonResource(req.Params.URI, c)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractID extracts the id from a URI like medic://<collection>{id}.
func extractID(uri, collection string) string {
	prefix := uriScheme + collection

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

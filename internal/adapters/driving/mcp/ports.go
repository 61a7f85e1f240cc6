package mcp

import (
	"github.com/mukesh2006/medic/internal/core/ports/driven"
	"github.com/mukesh2006/medic/internal/core/ports/driving"
)

// Ports aggregates all ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Intake receives SMS submissions.
	Intake driving.IntakeService

	// Contacts manages the contact hierarchy.
	Contacts driving.ContactService

	// Forms lists the known SMS forms.
	Forms driven.FormSchemaSource
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Intake == nil {
		return ErrMissingIntakeService
	}
	// Contacts and Forms are optional
	return nil
}

package gateway

import (
	"github.com/mukesh2006/medic/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Intake receives SMS submissions.
	Intake driving.IntakeService

	// Contacts manages the contact hierarchy. Contact routes are only
	// mounted when it is set.
	Contacts driving.ContactService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Intake == nil {
		return ErrMissingIntakeService
	}
	return nil
}

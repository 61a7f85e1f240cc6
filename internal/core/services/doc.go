// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// IntakeService turns inbound SMS into stored data records, with
// FacilityResolver linking each record to the sender's clinic.
// ContactService saves contacts together with their new siblings and
// repeated children, embedding lineages instead of full ancestors.
//
// Services are pure Go with no CGO.
package services

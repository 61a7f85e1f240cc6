// Package mcp provides an MCP (Model Context Protocol) server adapter for medic.
// It lets AI assistants submit SMS reports and read or save contacts.
package mcp

import "errors"

// ErrMissingIntakeService is returned when the intake service is not provided.
var ErrMissingIntakeService = errors.New("mcp: intake service is required")

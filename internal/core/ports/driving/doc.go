// Package driving defines the use cases the outside world invokes on medic:
// SMS intake, contact saves and settings.
//
// The CLI, the HTTP gateway and the MCP server all drive the core through
// these interfaces. Implementations live in internal/core/services.
package driving

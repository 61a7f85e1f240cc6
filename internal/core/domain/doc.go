// Package domain defines the core business entities for medic.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawMessage: An inbound SMS as delivered by the gateway
//   - FormSchema: The ordered field definitions of an SMS form
//   - DataRecord: The canonical record built from one SMS submission
//   - Contact: A node of the facility hierarchy
//   - Lineage: The reduced ancestor chain embedded in other contacts
//   - Document: The unit persisted by the document store
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

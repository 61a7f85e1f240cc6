// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document persistence with revisions and secondary indexes
//   - FormSchemaSource: SMS form definitions
//   - Localizer: Acknowledgement and summary text
//   - FormParser: SMS text to data record
//   - ConfigStore: Application configuration
//   - Metrics: Intake and save counters
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

// Package file provides file-based implementations of driven port interfaces.
// These adapters read from and persist to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage with MEDIC_* environment overrides
//   - FormCatalog: YAML form definitions, embedded defaults plus a user directory
package file

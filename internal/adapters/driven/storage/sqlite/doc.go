// Package sqlite provides a SQLite-based implementation of driven.DocumentStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// Documents are kept as JSON text in the documents table. Secondary index
// rows are materialised into view_rows in the same transaction that writes
// the document, so index reads never see a half-written document.
// The schema is managed through versioned migrations in migrations/.
//
// # Data Location
//
// By default, the database is stored at ~/.medic/data/medic.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite

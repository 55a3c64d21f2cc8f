// Package sqlite provides a SQLite-based implementation of driven.StateStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// The snap state is a single JSON document in the one row of snap_state.
//
// # Data Location
//
// By default, the database is stored at ~/.teabag/data/state.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Read-modify-write sequences built on top of it are not
// atomic.
package sqlite

// Package storage provides the durable key-value store behind the note store
// and the option registry.
//
// # Overview
//
// Values are opaque byte slices (JSON in practice) under string keys, in a
// single namespace shared by every collection. Callers own disjoint keys:
// "nurseNotes" for notes and one key per option category.
//
// # Implementations
//
//   - SQLiteRepository:  table "storage" in the local SQLite database (default)
//   - LevelDBRepository: a goleveldb directory
//   - MemoryRepository:  process-local map, for ephemeral sessions and tests
//
// # Contract
//
// Get returns (nil, nil) for an absent key. SetMany is atomic: either every
// pair is written or none is. Clear removes every key in the namespace.
package storage

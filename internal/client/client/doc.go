// Package client bootstraps local persistence for the Nurse Notes CLI.
//
// # Overview
//
// OpenSQLite opens the SQLite file and applies the embedded goose
// migrations (RunMigrations). InitStorage picks the key-value backend named
// in the configuration (sqlite, leveldb or memory) and returns it together
// with a closer for the underlying handle.
//
// # Error Handling
//
// An unsupported backend name is reported as ErrUnknownBackend; open and
// migration failures are wrapped and returned as is.
package client

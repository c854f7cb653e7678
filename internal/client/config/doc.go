// Package config loads runtime configuration for the Nurse Notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file (see parseFile) selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   storage path (SQLite file or LevelDB directory)
//	-b string   storage backend: sqlite, leveldb or memory
//	-o string   export directory
//	-l string   log level
//	-y          assume yes for confirmations
//
// # File schema
//
//	storage_path: nursenotes.db
//	backend: sqlite
//	export_dir: exports
//	log_level: info
//	assume_yes: false
//
// Keys that are missing or empty in the file keep their previous value.
package config

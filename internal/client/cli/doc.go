// Package cli provides the interactive Nurse Notes command-line client.
//
// It wires configuration, local storage and the note/option services into a
// line-oriented REPL. Destructive commands (clear, reset) ask for
// confirmation first unless the -y flag was given.
//
// Key features:
//   - Fill in and save a shift note
//   - List, filter and export notes
//   - Manage the four option lists, export and import them as a bundle
//   - Clear notes or reset everything
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

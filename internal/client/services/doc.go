// Package services holds the Nurse Notes business logic on top of the
// key-value repository: the note store (NoteService), the four option lists
// (OptionService) and the full reset (ResetService).
//
// Stored values are JSON. A value that no longer parses is treated as absent
// and logged at WARN level; the next write replaces it. Repository I/O errors
// are returned to the caller.
package services

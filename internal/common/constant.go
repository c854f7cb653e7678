package common

// NotesStorageKey is the key-value entry holding the JSON array of notes.
const NotesStorageKey = "nurseNotes"

// File names used by the exporters.
const (
	NotesExportBaseName = "nurse_notes"
	BundleExportName    = "dropdown_data.json"
	BundleContentType   = "application/json"
)

// Package models defines the records Nurse Notes persists: shift notes and
// the option categories that feed the note form.
package models

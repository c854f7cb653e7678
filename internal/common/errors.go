// Package common defines shared constants and sentinel errors used across
// the Nurse Notes packages. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Destructive operations attempted without a granted confirmation.
	ErrNotConfirmed = errors.New("action not confirmed")

	// Option registry errors.
	ErrUnknownCategory = errors.New("unknown option category")
	ErrInvalidBundle   = errors.New("invalid option bundle")

	// Note filter expression failed to compile or evaluate.
	ErrInvalidFilter = errors.New("invalid filter expression")
)

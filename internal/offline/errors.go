package offline

import "errors"

var (
	ErrInstallFailed = errors.New("cache install failed")
	ErrNoOrigin      = errors.New("origin URL is required")
)

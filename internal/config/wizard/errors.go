package wizard

import "errors"

// ErrNotOverwritten is returned when the user keeps an existing config file.
var ErrNotOverwritten = errors.New("existing config kept")

// Validation errors for the interactive wizard.
var (
	errManifestPathRequired = errors.New("manifest path is required")
	errManifestNotFound     = errors.New("manifest file does not exist")
	errManifestRejected     = errors.New("manifest not accepted")
)

package modules

import "errors"

var (
	// ErrNotProvisioned is returned when a module needs a resource that no
	// earlier module registered.
	ErrNotProvisioned = errors.New("resource not provisioned")

	// ErrMissingSecret is returned when a data action references an OAuth
	// client whose secret is not known.
	ErrMissingSecret = errors.New("oauth client secret unavailable")

	// ErrNoHomeDivision is returned when role divisions are needed before
	// the home division was resolved.
	ErrNoHomeDivision = errors.New("home division unknown")

	// ErrUnknownCategory is returned for a category without a module.
	ErrUnknownCategory = errors.New("unknown category")
)

// Package tui provides a Bubble Tea-based terminal UI for install and
// uninstall runs.
package tui

import "github.com/purecloudlabs/premium-app-installer/internal/provisioning"

// EventMsg carries one provisioning event from the running command.
type EventMsg struct {
	Event provisioning.Event
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries the error the command finished with.
type ErrMsg struct{ Err error }

// DoneMsg signals that the command finished successfully.
type DoneMsg struct {
	// Summary is shown below the dashboard once the run is over.
	Summary string
}

// Package naming provides consistent naming functions for Premium App resources.
//
// Genesys Cloud has no resource labels, so every object the installer creates
// carries the installation prefix in its name (PREMIUM_EXAMPLE_ by default).
// The prefix is the only way to find the app's resources again on re-entry and
// on uninstall.
package naming

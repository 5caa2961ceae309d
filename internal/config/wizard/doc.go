// Package wizard provides the interactive setup wizard for premium-app.
//
// The wizard walks through five pages (environment, credentials, app
// settings, manifest and extras) built with charmbracelet/huh. Every input is
// validated with the config rule table, so the wizard can never produce a
// file that Load would reject for a field it asked about.
//
// RunWizard collects a Result, BuildConfig turns it into a config.Config and
// WriteConfig saves it.
package wizard

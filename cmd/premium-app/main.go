// Package main is the entry point for the premium-app CLI.
//
// premium-app installs a Genesys Cloud Premium App into an org: it creates
// the roles, groups, OAuth clients, app instances, data tables, trunks, and
// data actions the app needs, configures them, and records what it did in
// an install report. Uninstall removes everything carrying the app's prefix.
//
// Commands: init, install, uninstall, status, login, manifest.
//
// For detailed usage information, run:
//
//	premium-app --help
package main

import (
	"fmt"
	"os"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

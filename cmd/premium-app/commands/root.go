// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/handlers"
)

// Root returns the root command for the premium-app CLI.
func Root() *cobra.Command {
	var globals handlers.Globals

	cmd := &cobra.Command{
		Use:           "premium-app",
		Short:         "Install a Genesys Cloud Premium App into an org",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&globals.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Install(&globals))
	cmd.AddCommand(Uninstall(&globals))
	cmd.AddCommand(Status(&globals))
	cmd.AddCommand(Login(&globals))
	cmd.AddCommand(Manifest(&globals))

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// addConfigFlag binds the --config flag every org-facing command takes.
func addConfigFlag(cmd *cobra.Command, globals *handlers.Globals) {
	cmd.Flags().StringVarP(&globals.ConfigPath, "config", "c", "", "Path to configuration file (default: premium-app.yaml)")
}

// tuiFlag returns the --tui value only when the user set it.
func tuiFlag(cmd *cobra.Command, value bool) *bool {
	if !cmd.Flags().Changed("tui") {
		return nil
	}
	return &value
}

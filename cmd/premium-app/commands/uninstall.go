package commands

import (
	"github.com/spf13/cobra"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/handlers"
)

// Uninstall returns the uninstall command.
//
// The uninstall command removes every resource carrying the configured
// prefix, in reverse manifest order.
func Uninstall(globals *handlers.Globals) *cobra.Command {
	var (
		opts   handlers.UninstallOptions
		useTUI bool
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the Premium App and all of its resources",
		Long: `Uninstall removes every resource the Premium App created.

Resources are found by the configured prefix and removed in reverse manifest
order: data actions, trunks, data tables, app instances, OAuth clients,
groups, and roles. A failed removal does not stop the others; all failures
are reported at the end. Install reports stored in S3 are deleted as well.

Use --sweep to also remove prefixed resources the manifest no longer lists.

Example:
  premium-app uninstall --dry-run
  premium-app uninstall

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Globals = *globals
			opts.TUI = tuiFlag(cmd, useTUI)
			return handlers.Uninstall(cmd.Context(), opts)
		},
	}

	addConfigFlag(cmd, globals)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "List what would be removed without removing it")
	cmd.Flags().BoolVar(&opts.Sweep, "sweep", false, "Remove every prefixed resource, including ones not in the manifest")
	cmd.Flags().BoolVar(&useTUI, "tui", true, "Show the progress dashboard when attached to a terminal")

	return cmd
}

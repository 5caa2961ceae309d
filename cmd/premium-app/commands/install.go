package commands

import (
	"github.com/spf13/cobra"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/handlers"
)

// Install returns the command that provisions the Premium App.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect premium-app.yaml)
//	--reinstall: Remove the existing install first
//	--skip-product-check: Do not require the product entitlement
//	--tui: Force the dashboard on or off
//
// Environment variables:
//
//	PURECLOUD_CLIENT_ID, PURECLOUD_CLIENT_SECRET: client credentials login
//	PURECLOUD_ACCESS_TOKEN: token login
func Install(globals *handlers.Globals) *cobra.Command {
	var (
		opts   handlers.InstallOptions
		useTUI bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the Premium App into the configured org",
		Long: `Install the Premium App into the configured Genesys Cloud org.

Every resource the manifest lists is created with the configured prefix.
Resources that already exist are reused, so running install again is safe.
After the resources are created and configured, the finally hooks print the
app URL and write the install report, also when the install failed.

If no config file is specified, it looks for premium-app.yaml in the current
directory and its parents. Use 'premium-app init' to create one.

Examples:
  # Install using premium-app.yaml
  premium-app install

  # Start over from a clean org
  premium-app install --reinstall

  # Install into an org that has not purchased the product (testing)
  premium-app install --skip-product-check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Globals = *globals
			opts.TUI = tuiFlag(cmd, useTUI)
			return handlers.Install(cmd.Context(), opts)
		},
	}

	addConfigFlag(cmd, globals)
	cmd.Flags().BoolVar(&opts.Reinstall, "reinstall", false, "Remove the existing install before installing again")
	cmd.Flags().BoolVar(&opts.SkipProductCheck, "skip-product-check", false, "Skip the product entitlement check")
	cmd.Flags().BoolVar(&useTUI, "tui", true, "Show the progress dashboard when attached to a terminal")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/handlers"
)

// Manifest returns the command that prints the effective manifest.
func Manifest(globals *handlers.Globals) *cobra.Command {
	var opts handlers.ManifestOptions

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the effective provisioning manifest",
		Long: `Print the manifest install would use, with the config's prefix and
product ID applied. Use --default to print the built-in manifest as a
starting point for a custom one.

Example:
  premium-app manifest --default > manifest.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts.Globals = *globals
			return handlers.Manifest(opts)
		},
	}

	addConfigFlag(cmd, globals)
	cmd.Flags().BoolVar(&opts.Default, "default", false, "Print the built-in default manifest")

	return cmd
}

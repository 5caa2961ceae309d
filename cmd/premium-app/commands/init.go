package commands

import (
	"github.com/spf13/cobra"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/handlers"
	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "premium-app.yaml")
//	--force, -f: Overwrite an existing file without asking
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create an installer configuration",
		Long: `Interactively create an installer configuration file.

This command guides you through configuring the installer step by step.
It will ask about:

  - The Genesys Cloud environment and language
  - How to log in (client credentials, browser, or an access token)
  - The Premium App URL, resource prefix, and product ID
  - The provisioning manifest (built-in or a file)
  - Where to keep the install report

Secrets are never written to the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")

	return cmd
}

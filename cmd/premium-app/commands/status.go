package commands

import (
	"github.com/spf13/cobra"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/handlers"
)

// Status returns the status command.
func Status(globals *handlers.Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which Premium App resources exist in the org",
		Long: `Status lists the prefixed resources present in the org per category
and how many manifest items are missing. It never changes anything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), *globals)
		},
	}

	addConfigFlag(cmd, globals)
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/purecloudlabs/premium-app-installer/cmd/premium-app/handlers"
)

// Login returns the login command for browser authentication.
func Login(globals *handlers.Globals) *cobra.Command {
	var opts handlers.LoginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in through the browser as an administrator",
		Long: `Log in to Genesys Cloud through the browser.

Used with auth_mode: browser. The command prints an authorization URL and
waits for the redirect on http://localhost:<redirect_port>. The access token
is cached in the user config directory until it expires.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Globals = *globals
			return handlers.Login(cmd.Context(), opts)
		},
	}

	addConfigFlag(cmd, globals)
	cmd.Flags().BoolVar(&opts.Logout, "logout", false, "Remove the cached token")

	return cmd
}

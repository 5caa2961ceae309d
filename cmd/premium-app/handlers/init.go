package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string, force bool) error {
	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)

	if err := writeConfig(cfg, outputPath, force); err != nil {
		if errors.Is(err, wizard.ErrNotOverwritten) {
			fmt.Println("Existing configuration kept.")
			return nil
		}
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("premium-app - Genesys Cloud Premium App installer")
	fmt.Println("=================================================")
	fmt.Println()
	fmt.Println("This wizard creates the installer configuration.")
	fmt.Println("Secrets are never written to the file, they come from the environment.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Environment: %s\n", cfg.Environment)
	fmt.Printf("  Auth mode:   %s\n", cfg.AuthMode)
	fmt.Printf("  App URL:     %s\n", cfg.AppURL)
	if cfg.Prefix != "" {
		fmt.Printf("  Prefix:      %s\n", cfg.Prefix)
	}
	if cfg.Manifest != "" {
		fmt.Printf("  Manifest:    %s\n", cfg.Manifest)
	}
	if cfg.ReportEnabled() {
		fmt.Printf("  Reports:     s3://%s\n", cfg.Report.S3.Bucket)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	switch cfg.AuthMode {
	case config.AuthClientCredentials:
		fmt.Println("  1. Export your OAuth client credentials:")
		fmt.Printf("     export %s=<id> %s=<secret>\n", config.EnvClientID, config.EnvClientSecret)
	case config.AuthToken:
		fmt.Println("  1. Export an access token:")
		fmt.Printf("     export %s=<token>\n", config.EnvAccessToken)
	case config.AuthBrowser:
		fmt.Println("  1. Log in as an administrator:")
		fmt.Println("     premium-app login")
	}
	fmt.Println()
	fmt.Println("  2. Install the app:")
	fmt.Println("     premium-app install")
	fmt.Println()
}

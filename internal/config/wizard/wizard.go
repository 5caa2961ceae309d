package wizard

import (
	"context"
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Environment
	Environment string
	Language    string

	// Credentials
	AuthMode      config.AuthMode
	OAuthClientID string

	// App settings
	AppURL    string
	Prefix    string
	ProductID string

	// Manifest
	ManifestSource string
	ManifestPath   string

	// Extras
	ReportPath string
	ReportDest string
	S3Endpoint string
	S3Region   string
	S3Bucket   string
	TUI        bool
}

// defaults returns a Result pre-filled with the values the forms start from.
func defaults() *Result {
	return &Result{
		Environment:    "mypurecloud.com",
		Language:       "en-us",
		AuthMode:       config.AuthClientCredentials,
		ManifestSource: ManifestDefault,
		ReportPath:     config.DefaultReportFilename,
		ReportDest:     ReportLocal,
		S3Region:       "us-east-1",
		TUI:            true,
	}
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := defaults()

	if err := runEnvironmentGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := runCredentialsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	if err := runAppGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("app settings: %w", err)
	}

	if err := runManifestGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	if err := runExtrasGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("extras: %w", err)
	}

	return result, nil
}

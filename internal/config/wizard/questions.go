package wizard

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// runEnvironmentGroup prompts for the region and the app language.
func runEnvironmentGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Environment").
				Description("Genesys Cloud region of the org").
				Options(EnvironmentOptions()...).
				Value(&result.Environment).
				Validate(config.ValidateField(config.FieldEnvironment)),
			huh.NewSelect[string]().
				Title("Language").
				Description("Passed to the app as its language tag").
				Options(LanguageOptions()...).
				Value(&result.Language).
				Validate(config.ValidateField(config.FieldLanguage)),
		).Title("Environment"),
	).RunWithContext(ctx)
}

// runCredentialsGroup prompts for the login flow.
func runCredentialsGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[config.AuthMode]().
				Title("Login").
				Description("How the installer authenticates. Secrets are read from the environment, never stored.").
				Options(AuthModeOptions...).
				Value(&result.AuthMode),
		).Title("Credentials"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.AuthMode != config.AuthBrowser {
		return nil
	}

	// Browser login needs a code grant client with a loopback redirect.
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OAuth Client ID").
				Description(fmt.Sprintf("Code grant client with redirect http://localhost:%d/callback", config.DefaultRedirectPort)).
				Placeholder("00000000-0000-0000-0000-000000000000").
				Value(&result.OAuthClientID).
				Validate(required(config.FieldOAuthClientID)),
		).Title("Browser Login"),
	).RunWithContext(ctx)
}

// runAppGroup prompts for the app URL and naming.
func runAppGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("App URL").
				Description("Where the Premium App is served. {{pcEnvironment}} and {{pcLangTag}} are filled in by Genesys Cloud.").
				Placeholder("https://app.example.com/index.html?env={{pcEnvironment}}&lang={{pcLangTag}}").
				Value(&result.AppURL).
				Validate(config.ValidateField(config.FieldAppURL)),
			huh.NewInput().
				Title("Name Prefix (Optional)").
				Description("Prepended to every resource name. Leave empty to use the manifest prefix.").
				Placeholder("PREMIUM_APP_").
				Value(&result.Prefix).
				Validate(config.ValidateField(config.FieldPrefix)),
			huh.NewInput().
				Title("Product ID (Optional)").
				Description("The org must own this product. Leave empty to use the manifest product.").
				Value(&result.ProductID).
				Validate(config.ValidateField(config.FieldProductID)),
		).Title("App Settings"),
	).RunWithContext(ctx)
}

// runManifestGroup prompts for the manifest and shows what it provisions.
func runManifestGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Manifest").
				Description("Which resources the installer provisions").
				Options(ManifestOptions...).
				Value(&result.ManifestSource),
		).Title("Manifest"),
		huh.NewGroup(
			huh.NewInput().
				Title("Manifest Path").
				Placeholder("premium-app-manifest.yaml").
				Value(&result.ManifestPath).
				Validate(validateManifestPath),
		).Title("Manifest File").WithHideFunc(func() bool { return result.ManifestSource != ManifestFile }),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	if result.ManifestSource == ManifestDefault {
		result.ManifestPath = ""
	}

	m, err := config.LoadManifest(result.ManifestPath)
	if err != nil {
		return err
	}
	if result.Prefix != "" {
		m.Prefix = result.Prefix
	}

	accept := true
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Review").
				Description(ManifestSummary(m)),
			huh.NewConfirm().
				Title("Provision these resources?").
				Value(&accept),
		).Title("Manifest Review"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	if !accept {
		return errManifestRejected
	}
	return nil
}

// runExtrasGroup prompts for the report destination and the progress view.
func runExtrasGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Report File").
				Description("Where the install report is written").
				Value(&result.ReportPath),
			huh.NewSelect[string]().
				Title("Report Destination").
				Options(ReportOptions...).
				Value(&result.ReportDest),
			huh.NewConfirm().
				Title("Interactive Progress").
				Description("Show the progress view when running in a terminal").
				Value(&result.TUI),
		).Title("Extras"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.ReportDest != ReportS3 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("S3 Endpoint (Optional)").
				Description("Leave empty for AWS. Set for MinIO or another S3-compatible store.").
				Placeholder("https://minio.example.com").
				Value(&result.S3Endpoint).
				Validate(config.ValidateField(config.FieldReportURL)),
			huh.NewInput().
				Title("S3 Region").
				Value(&result.S3Region),
			huh.NewInput().
				Title("S3 Bucket").
				Value(&result.S3Bucket).
				Validate(required(config.FieldReportBucket)),
		).Title("Report Storage"),
	).RunWithContext(ctx)
}

// validateManifestPath requires an existing file.
func validateManifestPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errManifestPathRequired
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", errManifestNotFound, path)
	}
	return nil
}

// required wraps a rule validator so that empty values are rejected for a
// field the rule table treats as optional.
func required(field string) func(string) error {
	validate := config.ValidateField(field)
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return validate(v)
	}
}

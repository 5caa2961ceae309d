package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// Manifest sources offered on the manifest page.
const (
	ManifestDefault = "default"
	ManifestFile    = "file"
)

// Report destinations offered on the extras page.
const (
	ReportLocal = "local"
	ReportS3    = "s3"
)

// EnvironmentOptions returns one option per known Genesys Cloud region.
func EnvironmentOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(config.Regions))
	for _, r := range config.Regions {
		opts = append(opts, huh.NewOption(r.Name+" - "+r.Domain, r.Domain))
	}
	return opts
}

// LanguageOptions returns the languages the app ships translations for.
func LanguageOptions() []huh.Option[string] {
	return huh.NewOptions(config.Languages...)
}

// AuthModeOptions lists the supported login flows.
var AuthModeOptions = []huh.Option[config.AuthMode]{
	huh.NewOption("Client credentials (PURECLOUD_CLIENT_ID / PURECLOUD_CLIENT_SECRET)", config.AuthClientCredentials),
	huh.NewOption("Browser login as an administrator", config.AuthBrowser),
	huh.NewOption("Existing access token (PURECLOUD_ACCESS_TOKEN)", config.AuthToken),
}

// ManifestOptions lists where the manifest comes from.
var ManifestOptions = []huh.Option[string]{
	huh.NewOption("Built-in default manifest", ManifestDefault),
	huh.NewOption("Manifest file", ManifestFile),
}

// ReportOptions lists where the install report goes.
var ReportOptions = []huh.Option[string]{
	huh.NewOption("Local file only", ReportLocal),
	huh.NewOption("Local file and S3-compatible storage", ReportS3),
}

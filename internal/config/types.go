package config

import (
	"os"
	"strconv"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "premium-app.yaml"

// DefaultReportFilename is where the install report is written when no path is configured.
const DefaultReportFilename = "premium-app-install.yaml"

// DefaultRedirectPort is the local port used by browser login.
const DefaultRedirectPort = 8085

// Environment variables read by ApplyEnv.
const (
	EnvClientID     = "PURECLOUD_CLIENT_ID"
	EnvClientSecret = "PURECLOUD_CLIENT_SECRET"
	EnvAccessToken  = "PURECLOUD_ACCESS_TOKEN"
	EnvEnvironment  = "PURECLOUD_ENVIRONMENT"
	EnvS3AccessKey  = "PREMIUM_APP_S3_ACCESS_KEY"
	EnvS3SecretKey  = "PREMIUM_APP_S3_SECRET_KEY"
	EnvRedirectPort = "PREMIUM_APP_REDIRECT_PORT"
)

// AuthMode selects how the installer authenticates against Genesys Cloud.
type AuthMode string

const (
	// AuthClientCredentials uses an OAuth client credentials grant.
	// There is no user context, so installer-specific steps are skipped.
	AuthClientCredentials AuthMode = "client_credentials"
	// AuthBrowser uses an authorization code grant through the browser and
	// acts as the logged-in administrator.
	AuthBrowser AuthMode = "browser"
	// AuthToken uses a pre-issued access token from PURECLOUD_ACCESS_TOKEN.
	AuthToken AuthMode = "token"
)

// Config is the staging object for an installation. The wizard fills it in,
// it is persisted as premium-app.yaml, and the orchestrator consumes it.
type Config struct {
	// Environment is the Genesys Cloud region domain, e.g. mypurecloud.com.
	Environment string `yaml:"environment"`

	// Language is passed to the app as the langTag query parameter.
	Language string `yaml:"language,omitempty"`

	// AuthMode selects the OAuth flow.
	AuthMode AuthMode `yaml:"auth_mode"`

	// OAuthClientID is the public (code grant) client used for browser login.
	// Client credentials are read from the environment instead.
	OAuthClientID string `yaml:"oauth_client_id,omitempty"`

	// RedirectPort is the loopback port browser login listens on.
	RedirectPort int `yaml:"redirect_port,omitempty"`

	// AppURL is the URL the Premium App is served from.
	AppURL string `yaml:"app_url"`

	// Prefix overrides the manifest prefix for every provisioned name.
	Prefix string `yaml:"prefix,omitempty"`

	// ProductID overrides the manifest product ID used by the preflight check.
	ProductID string `yaml:"product_id,omitempty"`

	// Manifest is a path to a provisioning manifest. Empty uses the embedded default.
	Manifest string `yaml:"manifest,omitempty"`

	// Report configures where the install report goes.
	Report ReportConfig `yaml:"report,omitempty"`

	// TUI shows the interactive progress view when stdout is a terminal.
	TUI bool `yaml:"tui,omitempty"`

	// MetricsFile is a node-exporter textfile the run's metrics are written to.
	MetricsFile string `yaml:"metrics_file,omitempty"`

	// Runtime secrets, never serialized.
	ClientID     string `yaml:"-"`
	ClientSecret string `yaml:"-"`
	AccessToken  string `yaml:"-"`
}

// ReportConfig configures the install report.
type ReportConfig struct {
	// Path of the local YAML report. Empty uses DefaultReportFilename.
	Path string `yaml:"path,omitempty"`

	// S3 uploads the report to S3-compatible storage when set.
	S3 *S3Config `yaml:"s3,omitempty"`
}

// S3Config holds S3-compatible object storage settings.
type S3Config struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region,omitempty"`
	Bucket   string `yaml:"bucket"`

	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// ApplyEnv fills runtime secrets and environment overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Environment = v
	}
	c.ClientID = os.Getenv(EnvClientID)
	c.ClientSecret = os.Getenv(EnvClientSecret)
	c.AccessToken = os.Getenv(EnvAccessToken)
	if v := os.Getenv(EnvRedirectPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RedirectPort = port
		}
	}
	if c.Report.S3 != nil {
		c.Report.S3.AccessKey = os.Getenv(EnvS3AccessKey)
		c.Report.S3.SecretKey = os.Getenv(EnvS3SecretKey)
	}
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.AuthMode == "" {
		c.AuthMode = AuthClientCredentials
	}
	if c.Language == "" {
		c.Language = "en-us"
	}
	if c.RedirectPort == 0 {
		c.RedirectPort = DefaultRedirectPort
	}
	if c.Report.Path == "" {
		c.Report.Path = DefaultReportFilename
	}
	if c.Report.S3 != nil && c.Report.S3.Region == "" {
		c.Report.S3.Region = "us-east-1"
	}
}

// ReportEnabled reports whether the report should be uploaded to object storage.
func (c *Config) ReportEnabled() bool {
	return c.Report.S3 != nil && c.Report.S3.Bucket != ""
}

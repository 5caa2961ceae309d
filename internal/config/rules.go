package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// Rule is one row of a declarative validation table. A field value is checked
// against every non-zero constraint in the row.
type Rule struct {
	Field    string
	Required bool
	MaxLen   int
	Pattern  *regexp.Regexp
	// Hint describes Pattern to the user.
	Hint  string
	OneOf func() []string
	// Check runs after the built-in constraints for non-empty values.
	Check func(string) error
}

var (
	prefixPattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,31}$`)
	productIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	uuidPattern      = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	bucketPattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)
	itemNamePattern  = regexp.MustCompile(`^[^\x00-\x1f]{1,100}$`)
)

// Field names used by the configuration rule table and the wizard.
const (
	FieldEnvironment   = "environment"
	FieldLanguage      = "language"
	FieldAuthMode      = "auth_mode"
	FieldOAuthClientID = "oauth_client_id"
	FieldAppURL        = "app_url"
	FieldPrefix        = "prefix"
	FieldProductID     = "product_id"
	FieldReportBucket  = "report.s3.bucket"
	FieldReportURL     = "report.s3.endpoint"
	FieldItemName      = "name"
)

// ConfigRules is the rule table for Config.
var ConfigRules = []Rule{
	{Field: FieldEnvironment, Required: true, Check: checkEnvironment},
	{Field: FieldLanguage, OneOf: func() []string { return Languages }},
	{Field: FieldAuthMode, Required: true, OneOf: func() []string {
		return []string{string(AuthClientCredentials), string(AuthBrowser), string(AuthToken)}
	}},
	{Field: FieldOAuthClientID, Pattern: uuidPattern, Hint: "a Genesys Cloud OAuth client ID (UUID)"},
	{Field: FieldAppURL, Required: true, MaxLen: 2048, Check: checkHTTPSURL},
	{Field: FieldPrefix, Pattern: prefixPattern, Hint: "a letter followed by up to 31 letters, digits, '_' or '-'"},
	{Field: FieldProductID, Pattern: productIDPattern, Hint: "lowercase letters, digits and '-'"},
	{Field: FieldReportBucket, Pattern: bucketPattern, Hint: "a valid S3 bucket name"},
	{Field: FieldReportURL, Check: checkHTTPSURL},
}

// ItemRules is the rule table applied to every manifest item name.
var ItemRules = []Rule{
	{Field: FieldItemName, Required: true, Pattern: itemNamePattern, Hint: "1-100 printable characters"},
}

// Validate checks value against the rule.
func (r Rule) Validate(value string) error {
	if strings.TrimSpace(value) == "" {
		if r.Required {
			return fmt.Errorf("%s is required", r.Field)
		}
		return nil
	}
	if r.MaxLen > 0 && len(value) > r.MaxLen {
		return fmt.Errorf("%s must be at most %d characters", r.Field, r.MaxLen)
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		if r.Hint != "" {
			return fmt.Errorf("%s %q is invalid: expected %s", r.Field, value, r.Hint)
		}
		return fmt.Errorf("%s %q is invalid", r.Field, value)
	}
	if r.OneOf != nil {
		allowed := r.OneOf()
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("%s %q is invalid: must be one of %s", r.Field, value, strings.Join(allowed, ", "))
		}
	}
	if r.Check != nil {
		if err := r.Check(value); err != nil {
			return fmt.Errorf("%s: %w", r.Field, err)
		}
	}
	return nil
}

// RuleFor returns the rule for field from ConfigRules.
// Unknown fields get an empty rule that accepts anything.
func RuleFor(field string) Rule {
	for _, r := range ConfigRules {
		if r.Field == field {
			return r
		}
	}
	return Rule{Field: field}
}

// ValidateField validates a single value against ConfigRules.
// It is the validator the wizard binds to its inputs.
func ValidateField(field string) func(string) error {
	rule := RuleFor(field)
	return rule.Validate
}

// fieldValues maps rule field names to the Config values they constrain.
func (c *Config) fieldValues() map[string]string {
	values := map[string]string{
		FieldEnvironment:   c.Environment,
		FieldLanguage:      c.Language,
		FieldAuthMode:      string(c.AuthMode),
		FieldOAuthClientID: c.OAuthClientID,
		FieldAppURL:        c.AppURL,
		FieldPrefix:        c.Prefix,
		FieldProductID:     c.ProductID,
	}
	if c.Report.S3 != nil {
		values[FieldReportBucket] = c.Report.S3.Bucket
		values[FieldReportURL] = c.Report.S3.Endpoint
	}
	return values
}

// Validate checks the configuration against ConfigRules plus the
// cross-field constraints, returning every violation joined.
func (c *Config) Validate() error {
	values := c.fieldValues()

	var errs []error
	for _, rule := range ConfigRules {
		value, ok := values[rule.Field]
		if !ok {
			continue
		}
		if err := rule.Validate(value); err != nil {
			errs = append(errs, err)
		}
	}

	switch c.AuthMode {
	case AuthBrowser:
		if c.OAuthClientID == "" {
			errs = append(errs, ErrBrowserClientIDRequired)
		}
	case AuthClientCredentials:
		if c.ClientID == "" || c.ClientSecret == "" {
			errs = append(errs, ErrClientCredentialsMissing)
		}
	case AuthToken:
		if c.AccessToken == "" {
			errs = append(errs, ErrAccessTokenMissing)
		}
	}

	if c.Report.S3 != nil {
		if c.Report.S3.Bucket == "" {
			errs = append(errs, fmt.Errorf("%s is required when report.s3 is set", FieldReportBucket))
		}
		if c.Report.S3.AccessKey == "" || c.Report.S3.SecretKey == "" {
			errs = append(errs, ErrS3CredentialsMissing)
		}
	}

	return errors.Join(errs...)
}

func checkEnvironment(v string) error {
	if IsKnownEnvironment(v) {
		return nil
	}
	// Allow explicit URLs for private deployments and local testing.
	if strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "http://") {
		return nil
	}
	return fmt.Errorf("unknown environment %q", v)
}

func checkHTTPSURL(v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", v)
	}
	if u.Scheme != "https" && !isLoopback(u.Hostname()) {
		return fmt.Errorf("URL %q must use https", v)
	}
	return nil
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

package config

import (
	"fmt"
	"sort"
	"strings"
)

// Region describes a Genesys Cloud deployment.
type Region struct {
	Domain string
	Name   string
}

// Regions lists the Genesys Cloud deployments the installer knows about.
var Regions = []Region{
	{Domain: "mypurecloud.com", Name: "Americas (US East)"},
	{Domain: "usw2.pure.cloud", Name: "Americas (US West)"},
	{Domain: "cac1.pure.cloud", Name: "Americas (Canada)"},
	{Domain: "sae1.pure.cloud", Name: "Americas (Sao Paulo)"},
	{Domain: "use2.us-gov-pure.cloud", Name: "Americas (FedRAMP)"},
	{Domain: "mypurecloud.ie", Name: "EMEA (Dublin)"},
	{Domain: "euw2.pure.cloud", Name: "EMEA (London)"},
	{Domain: "mypurecloud.de", Name: "EMEA (Frankfurt)"},
	{Domain: "euc2.pure.cloud", Name: "EMEA (Zurich)"},
	{Domain: "mec1.pure.cloud", Name: "EMEA (UAE)"},
	{Domain: "aps1.pure.cloud", Name: "Asia Pacific (Mumbai)"},
	{Domain: "apne2.pure.cloud", Name: "Asia Pacific (Seoul)"},
	{Domain: "apne3.pure.cloud", Name: "Asia Pacific (Osaka)"},
	{Domain: "mypurecloud.jp", Name: "Asia Pacific (Tokyo)"},
	{Domain: "mypurecloud.com.au", Name: "Asia Pacific (Sydney)"},
}

// Languages are the language tags the sample app ships translations for.
var Languages = []string{"en-us", "es", "fr", "de", "ja", "pt-br"}

// IsKnownEnvironment reports whether domain is a known Genesys Cloud region.
func IsKnownEnvironment(domain string) bool {
	for _, r := range Regions {
		if r.Domain == domain {
			return true
		}
	}
	return false
}

// EnvironmentDomains returns the sorted list of known region domains.
func EnvironmentDomains() []string {
	out := make([]string, 0, len(Regions))
	for _, r := range Regions {
		out = append(out, r.Domain)
	}
	sort.Strings(out)
	return out
}

// APIBaseURL returns the REST API base URL for an environment.
// Values that already carry a scheme are returned unchanged, which lets tests
// point the client at a local server.
func APIBaseURL(env string) string {
	if strings.Contains(env, "://") {
		return strings.TrimRight(env, "/")
	}
	return fmt.Sprintf("https://api.%s", env)
}

// LoginBaseURL returns the OAuth login base URL for an environment.
func LoginBaseURL(env string) string {
	if strings.Contains(env, "://") {
		return strings.TrimRight(env, "/")
	}
	return fmt.Sprintf("https://login.%s", env)
}

// AppsBaseURL returns the client application host for an environment.
// Premium apps are embedded in apps.<env>.
func AppsBaseURL(env string) string {
	return fmt.Sprintf("https://apps.%s", env)
}

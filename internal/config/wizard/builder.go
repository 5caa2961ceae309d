package wizard

import (
	"fmt"
	"strings"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// BuildConfig creates a Config from the wizard result. Defaults are applied
// so the written file shows the effective values.
func BuildConfig(result *Result) *config.Config {
	cfg := &config.Config{
		Environment: result.Environment,
		Language:    result.Language,
		AuthMode:    result.AuthMode,
		AppURL:      strings.TrimSpace(result.AppURL),
		Prefix:      strings.TrimSpace(result.Prefix),
		ProductID:   strings.TrimSpace(result.ProductID),
		TUI:         result.TUI,
		Report: config.ReportConfig{
			Path: strings.TrimSpace(result.ReportPath),
		},
	}

	if result.AuthMode == config.AuthBrowser {
		cfg.OAuthClientID = strings.TrimSpace(result.OAuthClientID)
	}

	if result.ManifestSource == ManifestFile {
		cfg.Manifest = strings.TrimSpace(result.ManifestPath)
	}

	if result.ReportDest == ReportS3 {
		cfg.Report.S3 = &config.S3Config{
			Endpoint: strings.TrimSpace(result.S3Endpoint),
			Region:   strings.TrimSpace(result.S3Region),
			Bucket:   strings.TrimSpace(result.S3Bucket),
		}
	}

	cfg.ApplyDefaults()
	return cfg
}

// ManifestSummary describes what a manifest provisions, one category per
// line in provisioning order.
func ManifestSummary(m *config.Manifest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Prefix: %s\n", m.Prefix)
	if m.ProductID != "" {
		fmt.Fprintf(&sb, "Product: %s\n", m.ProductID)
	}
	for _, c := range m.Order {
		names := m.Names(c)
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s (%d): %s", c, len(names), strings.Join(names, ", "))
	}
	if m.Count() == 0 {
		sb.WriteString("\nNo resources.")
	}
	return sb.String()
}

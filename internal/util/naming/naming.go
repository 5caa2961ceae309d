package naming

import (
	"fmt"
	"strings"
)

// DefaultPrefix is used when neither the config nor the manifest sets one.
const DefaultPrefix = "PREMIUM_EXAMPLE_"

// Resource returns the platform name for a manifest item.
func Resource(prefix, name string) string {
	return prefix + name
}

// Owned reports whether a platform name belongs to the installation.
// An empty prefix owns nothing.
func Owned(prefix, fullName string) bool {
	return prefix != "" && strings.HasPrefix(fullName, prefix)
}

// Short strips the prefix from a platform name, returning the manifest item name.
func Short(prefix, fullName string) string {
	return strings.TrimPrefix(fullName, prefix)
}

// Credential returns the name of the credential created for a data-action integration.
func Credential(prefix, integration string) string {
	return fmt.Sprintf("%s%s-credentials", prefix, integration)
}

// ReportDir returns the object key prefix under which an installation's
// reports are stored.
func ReportDir(prefix string) string {
	p := strings.ToLower(strings.TrimRight(prefix, "_-"))
	if p == "" {
		p = "premium-app"
	}
	return p + "/"
}

// ReportObject returns the object key used when uploading an install report.
func ReportObject(prefix, installID string) string {
	return fmt.Sprintf("%sinstall-%s.yaml", ReportDir(prefix), installID)
}

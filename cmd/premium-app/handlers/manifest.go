package handlers

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// ManifestOptions are the manifest command flags.
type ManifestOptions struct {
	Globals
	// Default prints the embedded default manifest and ignores any config.
	Default bool
}

// Manifest prints the effective manifest: the embedded default or the
// configured file, with the config's prefix and product ID applied.
// Without a config file the default manifest is printed.
func Manifest(opts ManifestOptions) error {
	if opts.Default {
		_, err := output.Write(config.DefaultManifestYAML())
		return err
	}

	m, err := effectiveManifest(opts.ConfigPath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	fmt.Fprintf(output, "# %d resources, prefix %s\n", m.Count(), m.Prefix)
	_, err = output.Write(data)
	return err
}

func effectiveManifest(configPath string) (*config.Manifest, error) {
	path := configPath
	if path == "" {
		found, err := findConfigFile()
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultManifest()
		}
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg, err := loadConfigUnvalidated(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config.ForConfig(cfg)
}

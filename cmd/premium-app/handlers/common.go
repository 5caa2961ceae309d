// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/ui/tui"
)

// Globals are the flags shared by every command.
type Globals struct {
	ConfigPath  string
	Verbose     bool
	MetricsFile string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// findConfigFile locates premium-app.yaml (for testing injection).
	findConfigFile = config.FindConfigFile

	// loadConfigFile loads and validates a config file (for testing injection).
	loadConfigFile = config.Load

	// newPlatform creates the Genesys Cloud client for cfg.
	newPlatform = func(ctx context.Context, cfg *config.Config, log logr.Logger, metrics *provisioning.Metrics) (purecloud.PlatformManager, error) {
		cache, err := purecloud.DefaultTokenCache()
		if err != nil {
			return nil, err
		}
		ts, err := purecloud.TokenSource(ctx, cfg, cache)
		if err != nil {
			return nil, err
		}
		return purecloud.NewRealClient(ctx, cfg.Environment, ts,
			purecloud.WithLogger(log.WithName("purecloud")),
			purecloud.WithRequestObserver(metrics.ObserveRequest),
		), nil
	}

	// isInteractive reports whether stdout is a terminal.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// runTUI runs a command behind the dashboard.
	runTUI = func(ctx context.Context, m tui.Model, fn tui.RunFunc) error {
		return tui.Run(ctx, m, fn)
	}
)

// loadConfig loads and validates the configuration.
// If configPath is empty, it looks for premium-app.yaml from the current directory up.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'premium-app init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadRun loads the config and the manifest it references.
func loadRun(configPath string) (*config.Config, *config.Manifest, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	m, err := config.ForConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

// newLogger builds the zap-backed logger. Verbose output uses the
// development config with debug records.
func newLogger(verbose bool) (logr.Logger, func()) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	zl, err := zcfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }
}

// useTUI decides whether the dashboard runs. An explicit --tui flag wins
// over the config, and the dashboard never runs without a terminal.
func useTUI(cfg *config.Config, flag *bool) bool {
	enabled := cfg.TUI
	if flag != nil {
		enabled = *flag
	}
	return enabled && isInteractive()
}

// writeMetrics writes the metrics textfile when a path is configured.
// Failures are logged and never fail the command.
func writeMetrics(log logr.Logger, metrics *provisioning.Metrics, flagPath string, cfg *config.Config) {
	path := flagPath
	if path == "" && cfg != nil {
		path = cfg.MetricsFile
	}
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Error(err, "failed to write metrics textfile", "path", path)
		return
	}
	log.V(1).Info("metrics written", "path", path)
}

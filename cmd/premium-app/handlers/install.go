package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/purecloudlabs/premium-app-installer/internal/orchestration"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/ui/tui"
)

// InstallOptions are the install command flags.
type InstallOptions struct {
	Globals
	Reinstall        bool
	SkipProductCheck bool
	// TUI overrides the config's tui setting when non-nil.
	TUI *bool
}

// Install provisions the Premium App into the configured org.
//
// It loads the config and the effective manifest, authenticates with the
// configured auth mode, and runs the install pipeline: preflight, validation,
// an optional removal of the previous install, create, and configure. The
// finally hooks run afterwards whether or not the pipeline succeeded, so a
// report is written even for failed runs.
func Install(ctx context.Context, opts InstallOptions) error {
	cfg, m, err := loadRun(opts.ConfigPath)
	if err != nil {
		return err
	}

	log, sync := newLogger(opts.Verbose)
	defer sync()

	metrics := provisioning.NewMetrics()
	defer writeMetrics(log, metrics, opts.MetricsFile, cfg)

	platform, err := newPlatform(ctx, cfg, log, metrics)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	var res *orchestration.Result
	run := func(ctx context.Context, observer provisioning.Observer) (string, error) {
		installer := orchestration.NewInstaller(platform, cfg, m,
			orchestration.WithObserver(observer),
			orchestration.WithMetrics(metrics),
		)
		var runErr error
		res, runErr = installer.Install(ctx, orchestration.InstallOptions{
			SkipProductCheck: opts.SkipProductCheck,
			Reinstall:        opts.Reinstall,
		})
		return installSummary(res), runErr
	}

	if useTUI(cfg, opts.TUI) {
		err = runTUI(ctx, tui.NewInstallModel(cfg.Environment, m, opts.Reinstall), run)
	} else {
		log.Info("installing premium app", "environment", cfg.Environment, "prefix", m.Prefix, "resources", m.Count())
		_, err = run(ctx, provisioning.NewConsoleObserver(log))
	}

	if res != nil {
		fmt.Print(installSummary(res))
	}
	return err
}

// installSummary describes a finished install for the terminal.
func installSummary(res *orchestration.Result) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nInstall %s: %s\n", res.InstallID, res.Report.Status)
	fmt.Fprintf(&b, "  Resources: %d (%d created, %d reused)\n",
		len(res.Resources), res.Created(), len(res.Resources)-res.Created())
	if res.AppURL != "" && res.Report.Error == "" {
		fmt.Fprintf(&b, "  App URL:   %s\n", res.AppURL)
		fmt.Fprintf(&b, "  Admin:     %s\n", orchestration.AdminURL(res.Report.Environment))
	}
	if res.ReportPath != "" {
		fmt.Fprintf(&b, "  Report:    %s\n", res.ReportPath)
	}
	if res.ReportKey != "" {
		fmt.Fprintf(&b, "  Uploaded:  %s\n", res.ReportKey)
	}
	for _, err := range res.HookErrors {
		fmt.Fprintf(&b, "  Warning:   %v\n", err)
	}
	return b.String()
}

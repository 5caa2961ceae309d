package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/purecloudlabs/premium-app-installer/internal/orchestration"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/ui/tui"
)

// UninstallOptions are the uninstall command flags.
type UninstallOptions struct {
	Globals
	DryRun bool
	Sweep  bool
	TUI    *bool
}

// Uninstall removes every prefixed resource in reverse manifest order.
// Removal continues past individual failures, which are reported together.
// Stored install reports are deleted afterwards unless this is a dry run.
func Uninstall(ctx context.Context, opts UninstallOptions) error {
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

	var res *orchestration.UninstallResult
	run := func(ctx context.Context, observer provisioning.Observer) (string, error) {
		u := orchestration.NewUninstaller(platform, cfg, m,
			orchestration.WithObserver(observer),
			orchestration.WithMetrics(metrics),
		)
		var runErr error
		res, runErr = u.Uninstall(ctx, orchestration.UninstallOptions{DryRun: opts.DryRun, Sweep: opts.Sweep})
		return uninstallSummary(res, opts.DryRun), runErr
	}

	if useTUI(cfg, opts.TUI) {
		err = runTUI(ctx, tui.NewUninstallModel(cfg.Environment, m), run)
	} else {
		log.Info("uninstalling premium app", "environment", cfg.Environment, "prefix", m.Prefix, "dryRun", opts.DryRun)
		_, err = run(ctx, provisioning.NewConsoleObserver(log))
	}

	if res != nil {
		fmt.Print(uninstallSummary(res, opts.DryRun))
	}
	return err
}

func uninstallSummary(res *orchestration.UninstallResult, dryRun bool) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	if dryRun {
		fmt.Fprintf(&b, "\nDry run: %d resources would be removed\n", len(res.Planned))
		for _, r := range res.Planned {
			fmt.Fprintf(&b, "  - %-14s %s\n", r.Category, displayName(r))
		}
		return b.String()
	}

	fmt.Fprintf(&b, "\nRemoved %d of %d resources\n", len(res.Removed), len(res.Planned))
	if len(res.DeletedReports) > 0 {
		fmt.Fprintf(&b, "Deleted %d stored reports\n", len(res.DeletedReports))
	}
	return b.String()
}

func displayName(r provisioning.Resource) string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.Name
}

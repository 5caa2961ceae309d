package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/purecloudlabs/premium-app-installer/internal/orchestration"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/ui/tui"
)

// output is where status and manifest output goes (for testing injection).
var output io.Writer = os.Stdout

// Status lists the prefixed resources currently present per category.
// It only reads from the org and never changes anything.
func Status(ctx context.Context, opts Globals) error {
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

	installer := orchestration.NewInstaller(platform, cfg, m,
		orchestration.WithObserver(provisioning.NewConsoleObserver(log)),
		orchestration.WithMetrics(metrics),
	)
	statuses, err := installer.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}

	if isInteractive() {
		fmt.Fprint(output, tui.RenderStatus(cfg.Environment, m.Prefix, statuses))
		return nil
	}
	printStatusPlain(output, statuses)
	return nil
}

func printStatusPlain(w io.Writer, statuses []orchestration.CategoryStatus) {
	for _, s := range statuses {
		state := "ok"
		switch {
		case s.Err != nil:
			state = "error: " + s.Err.Error()
		case s.Missing() > 0:
			state = fmt.Sprintf("%d missing", s.Missing())
		}
		fmt.Fprintf(w, "%-14s %d/%d %s\n", s.Category, len(s.Resources), s.Expected, state)
		for _, r := range s.Resources {
			fmt.Fprintf(w, "  %s\t%s\n", displayName(r), r.ID)
		}
	}
}

package orchestration

import (
	"context"
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning/destroy"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning/modules"
)

// UninstallOptions tune an uninstall run.
type UninstallOptions struct {
	DryRun bool
	Sweep  bool
}

// UninstallResult describes a finished uninstall run.
type UninstallResult struct {
	Planned []provisioning.Resource
	Removed []provisioning.Resource
	// DeletedReports are the report objects removed from S3.
	DeletedReports []string
}

// Uninstaller removes an installation.
type Uninstaller struct {
	settings
}

// NewUninstaller creates an uninstaller for a manifest.
func NewUninstaller(platform purecloud.PlatformManager, cfg *config.Config, m *config.Manifest, opts ...Option) *Uninstaller {
	return &Uninstaller{settings: newSettings(platform, cfg, m, opts)}
}

// Uninstall deletes every prefixed resource in reverse manifest order. Stored
// reports are removed afterwards on a best-effort basis.
func (u *Uninstaller) Uninstall(ctx context.Context, opts UninstallOptions) (*UninstallResult, error) {
	reversed, err := modules.BuildReversed(u.manifest)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := u.runTimeout(ctx)
	defer cancel()
	pctx := u.newContext(runCtx)

	p := destroy.NewProvisioner(reversed, destroy.Options{DryRun: opts.DryRun, Sweep: opts.Sweep})
	runErr := provisioning.RunPhases(pctx, []provisioning.Phase{p})

	res := &UninstallResult{Planned: p.Planned(), Removed: p.Removed()}
	if !opts.DryRun {
		res.DeletedReports = u.deleteReports(pctx)
	}

	u.metrics.MarkRun("uninstall", runErr)
	if runErr != nil {
		return res, fmt.Errorf("uninstall failed: %w", runErr)
	}
	return res, nil
}

func (u *Uninstaller) deleteReports(ctx *provisioning.Context) []string {
	if !u.config.ReportEnabled() {
		return nil
	}
	store, err := u.newStore(ctx, u.config.Report.S3)
	if err == nil {
		var keys []string
		keys, err = store.DeleteAll(ctx, u.manifest.Prefix)
		if err == nil {
			return keys
		}
	}
	ctx.Observer.Printf("[Uninstall] Could not remove stored reports: %v", err)
	return nil
}
